package main

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/spf13/cobra"
)

func addIncomeFlags(cmd *cobra.Command) {
	cmd.Flags().String("income", "", "Gross annual income")
	cmd.Flags().String("deductions", "", "Itemized deductions, honored only by regimes that allow them")
	cmd.Flags().String("fy", "", "Financial year such as 2025-26 (default: latest on file)")
	cmd.Flags().String("age", string(domain.AgeUnder60), "Age band: under60, senior60to80 or superSenior80plus")
}

func incomeFromFlags(cmd *cobra.Command) (*domain.TaxRegimeInput, error) {
	income, err := decimalFlag(cmd, "income")
	if err != nil {
		return nil, err
	}
	deductions, err := optionalDecimal(cmd, "deductions")
	if err != nil {
		return nil, err
	}
	fy, _ := cmd.Flags().GetString("fy")
	age, _ := cmd.Flags().GetString("age")
	band := domain.AgeBand(age)
	if !band.Valid() {
		return nil, fmt.Errorf("invalid --age %q", age)
	}
	return &domain.TaxRegimeInput{
		GrossIncome:        income,
		EligibleDeductions: deductions,
		FinancialYear:      fy,
		AgeBand:            band,
	}, nil
}

var taxCmd = &cobra.Command{
	Use:     "tax",
	Short:   "Income tax under one regime",
	Example: "  fincalc tax --income 1200000 --regime new --fy 2025-26",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			in, err := incomeFromFlags(cmd)
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			req := domain.CalculationRequest{Kind: domain.KindTax, Tax: in}
			if regime, _ := cmd.Flags().GetString("regime"); regime != "" {
				req.Regimes = []string{regime}
			}
			return req, nil
		})
	},
}

var taxCompareCmd = &cobra.Command{
	Use:     "tax-compare",
	Short:   "Compare the tax owed under two regimes",
	Example: "  fincalc tax-compare --income 1500000 --deductions 200000",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			in, err := incomeFromFlags(cmd)
			if err != nil {
				return domain.CalculationRequest{}, err
			}
			regimes, _ := cmd.Flags().GetStringSlice("regimes")
			if len(regimes) > 2 {
				return domain.CalculationRequest{}, fmt.Errorf("--regimes takes at most two regimes, got %d", len(regimes))
			}
			return domain.CalculationRequest{Kind: domain.KindTaxCompare, Tax: in, Regimes: regimes}, nil
		})
	},
}

var gstCmd = &cobra.Command{
	Use:   "gst",
	Short: "Add GST to a net amount or extract it from a gross amount",
	Example: "  fincalc gst --amount 10000 --rate 18\n" +
		"  fincalc gst --amount 11800 --rate 18 --inclusive --inter-state",
	Args: cobra.NoArgs,
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
			in := &domain.GSTInput{
				Amount:       amount,
				RatePercent:  rate,
				Mode:         domain.GSTExclusive,
				Jurisdiction: domain.IntraState,
			}
			if inclusive, _ := cmd.Flags().GetBool("inclusive"); inclusive {
				in.Mode = domain.GSTInclusive
			}
			if inter, _ := cmd.Flags().GetBool("inter-state"); inter {
				in.Jurisdiction = domain.InterState
			}
			return domain.CalculationRequest{Kind: domain.KindGST, GST: in}, nil
		})
	},
}

func init() {
	addIncomeFlags(taxCmd)
	taxCmd.Flags().String("regime", "", "Regime id, or id@year (default: the configured default regime)")

	addIncomeFlags(taxCompareCmd)
	taxCompareCmd.Flags().StringSlice("regimes", nil, "Two regime ids to compare (default: new,old)")

	gstCmd.Flags().String("amount", "", "Net amount, or gross with --inclusive")
	gstCmd.Flags().String("rate", "18", "GST rate in percent")
	gstCmd.Flags().Bool("inclusive", false, "Amount already includes GST")
	gstCmd.Flags().Bool("inter-state", false, "Inter-state supply (IGST) instead of CGST + SGST")

	rootCmd.AddCommand(taxCmd, taxCompareCmd, gstCmd)
}
