package main

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var cagrCmd = &cobra.Command{
	Use:     "cagr",
	Short:   "Compound annual growth rate between two values",
	Example: "  fincalc cagr --initial 100000 --final 250000 --years 5",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			var in domain.CAGRInputs
			var err error
			if in.Initial, err = decimalFlag(cmd, "initial"); err != nil {
				return domain.CalculationRequest{}, err
			}
			if in.Final, err = decimalFlag(cmd, "final"); err != nil {
				return domain.CalculationRequest{}, err
			}
			if in.Years, err = decimalFlag(cmd, "years"); err != nil {
				return domain.CalculationRequest{}, err
			}
			return domain.CalculationRequest{Kind: domain.KindCAGR, CAGR: &in}, nil
		})
	},
}

var sipCmd = &cobra.Command{
	Use:     "sip",
	Short:   "Project a monthly investment plan",
	Example: "  fincalc sip --monthly 10000 --rate 12 --months 120",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			monthly, err := decimalFlag(cmd, "monthly")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			rate, err := decimalFlag(cmd, "rate")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			months, _ := cmd.Flags().GetInt("months")
			return domain.CalculationRequest{Kind: domain.KindGrowth, Growth: &domain.GrowthInputs{
				PeriodicContribution: monthly,
				AnnualRatePercent:    rate,
				Periods:              months,
				Mode:                 domain.RecurringMonthly,
			}}, nil
		})
	},
}

var lumpsumCmd = &cobra.Command{
	Use:     "lumpsum",
	Short:   "Project a one-time investment compounded yearly",
	Example: "  fincalc lumpsum --amount 100000 --rate 12 --years 10",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			amount, err := decimalFlag(cmd, "amount")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			rate, err := decimalFlag(cmd, "rate")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			years, _ := cmd.Flags().GetInt("years")
			return domain.CalculationRequest{Kind: domain.KindGrowth, Growth: &domain.GrowthInputs{
				InitialAmount:     amount,
				AnnualRatePercent: rate,
				Periods:           years,
				Mode:              domain.Lumpsum,
			}}, nil
		})
	},
}

var nscCmd = &cobra.Command{
	Use:   "nsc",
	Short: "Project a fixed-rate savings certificate or yearly deposit scheme",
	Example: "  fincalc nsc --amount 100000\n" +
		"  fincalc nsc --yearly 150000 --rate 7.1 --years 15",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			amount, err := optionalDecimal(cmd, "amount")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			yearly, err := optionalDecimal(cmd, "yearly")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			rate, err := decimalFlag(cmd, "rate")
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			years, _ := cmd.Flags().GetInt("years")
			return domain.CalculationRequest{Kind: domain.KindGrowth, Growth: &domain.GrowthInputs{
				InitialAmount:        amount,
				PeriodicContribution: yearly,
				AnnualRatePercent:    rate,
				Periods:              years,
				Mode:                 domain.FixedAnnual,
			}}, nil
		})
	},
}

// optionalDecimal is decimalFlag with zero for an unset flag
func optionalDecimal(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	if raw, _ := cmd.Flags().GetString(name); raw == "" {
		return decimal.Zero, nil
	}
	return decimalFlag(cmd, name)
}

func init() {
	cagrCmd.Flags().String("initial", "", "Starting value")
	cagrCmd.Flags().String("final", "", "Ending value")
	cagrCmd.Flags().String("years", "", "Holding period in years, fractions allowed")

	sipCmd.Flags().String("monthly", "", "Amount invested at the start of every month")
	sipCmd.Flags().String("rate", "", "Expected annual return in percent")
	sipCmd.Flags().Int("months", 0, "Number of monthly installments")

	lumpsumCmd.Flags().String("amount", "", "Amount invested")
	lumpsumCmd.Flags().String("rate", "", "Expected annual return in percent")
	lumpsumCmd.Flags().Int("years", 0, "Investment horizon in years")

	nscCmd.Flags().String("amount", "", "Initial deposit")
	nscCmd.Flags().String("yearly", "", "Deposit made at the start of every year")
	nscCmd.Flags().String("rate", "7.7", "Annual interest rate in percent")
	nscCmd.Flags().Int("years", 5, "Term in years")

	rootCmd.AddCommand(cagrCmd, sipCmd, lumpsumCmd, nscCmd)
}
