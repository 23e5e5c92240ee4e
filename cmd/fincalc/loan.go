package main

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/spf13/cobra"
)

func addLoanFlags(cmd *cobra.Command) {
	cmd.Flags().String("principal", "", "Loan amount")
	cmd.Flags().String("rate", "", "Annual interest rate in percent")
	cmd.Flags().Int("tenure", 0, "Tenure in months")
	cmd.Flags().String("name", "", "Label for the calculation")
}

func loanFromFlags(cmd *cobra.Command) (domain.LoanInputs, error) {
	principal, err := decimalFlag(cmd, "principal")
	if err != nil {
		return domain.LoanInputs{}, err
	}
	rate, err := decimalFlag(cmd, "rate")
	if err != nil {
		return domain.LoanInputs{}, err
	}
	tenure, _ := cmd.Flags().GetInt("tenure")
	return domain.LoanInputs{Principal: principal, AnnualRatePercent: rate, TenureMonths: tenure}, nil
}

func loanRequest(kind domain.CalculationKind) func(cmd *cobra.Command) (domain.CalculationRequest, error) {
	return func(cmd *cobra.Command) (domain.CalculationRequest, error) {
		loan, err := loanFromFlags(cmd)
		if err != nil {
			return domain.CalculationRequest{}, err
		}
		name, _ := cmd.Flags().GetString("name")
		return domain.CalculationRequest{Name: name, Kind: kind, Loan: &loan}, nil
	}
}

var emiCmd = &cobra.Command{
	Use:     "emi",
	Short:   "Calculate the monthly installment of a loan",
	Example: "  fincalc emi --principal 500000 --rate 12 --tenure 36",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, loanRequest(domain.KindEMI))
	},
}

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Short:   "Print the amortization schedule of a loan",
	Long:    "Print the amortization schedule of a loan. The console view shows the first year; use --format verbose or schedule-csv for every row.",
	Example: "  fincalc schedule --principal 500000 --rate 12 --tenure 36 --format schedule-csv",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, loanRequest(domain.KindSchedule))
	},
}

var prepayCmd = &cobra.Command{
	Use:     "prepay",
	Short:   "Simulate a one-time prepayment",
	Example: "  fincalc prepay --principal 500000 --rate 12 --tenure 36 --amount 100000 --at 12",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, func(cmd *cobra.Command) (domain.CalculationRequest, error) {
			req, err := loanRequest(domain.KindPrepayment)(cmd)
			if err != nil {
				return req, err
			}
			amount, err := decimalFlag(cmd, "amount")
			if err != nil {
				return req, err
			}
			at, _ := cmd.Flags().GetInt("at")
			strategy, _ := cmd.Flags().GetString("strategy")
			switch domain.PrepaymentStrategy(strategy) {
			case domain.ReduceTenure, domain.ReduceInstallment:
			default:
				return req, fmt.Errorf("invalid --strategy %q (use %s or %s)", strategy, domain.ReduceTenure, domain.ReduceInstallment)
			}
			req.Prepayment = &domain.PrepaymentScenario{
				ExtraAmount: amount,
				AtPeriod:    at,
				Strategy:    domain.PrepaymentStrategy(strategy),
			}
			return req, nil
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{emiCmd, scheduleCmd, prepayCmd} {
		addLoanFlags(cmd)
	}
	prepayCmd.Flags().String("amount", "", "Prepayment amount")
	prepayCmd.Flags().Int("at", 0, "Installment number after which the prepayment is made")
	prepayCmd.Flags().String("strategy", string(domain.ReduceTenure), "What the prepayment buys: reduce_tenure or reduce_installment")

	rootCmd.AddCommand(emiCmd, scheduleCmd, prepayCmd)
}
