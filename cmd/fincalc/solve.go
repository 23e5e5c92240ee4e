package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/solver"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Work backwards from an installment you can afford",
	Long: "Solve for the one loan parameter that makes the monthly installment equal --emi:\n" +
		"the interest rate, the tenure, or the principal.",
}

func solveSubCmd(target solver.Target, use, short, example string, flags ...string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := solver.Request{Target: target}
			var err error
			if req.Installment, err = decimalFlag(cmd, "emi"); err != nil {
				return err
			}
			for _, name := range flags {
				switch name {
				case "principal":
					req.Loan.Principal, err = decimalFlag(cmd, name)
				case "rate":
					req.Loan.AnnualRatePercent, err = decimalFlag(cmd, name)
				case "tenure":
					req.Loan.TenureMonths, err = cmd.Flags().GetInt(name)
				}
				if err != nil {
					return err
				}
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := solver.NewDefaultSolver(a.engine).Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			return renderSolve(cmd, a, result)
		},
	}
	cmd.Flags().String("emi", "", "Monthly installment to solve for")
	for _, name := range flags {
		switch name {
		case "principal":
			cmd.Flags().String(name, "", "Loan amount")
		case "rate":
			cmd.Flags().String(name, "", "Annual interest rate in percent")
		case "tenure":
			cmd.Flags().Int(name, 0, "Tenure in months")
		}
	}
	return cmd
}

func renderSolve(cmd *cobra.Command, a *app, result *solver.Result) error {
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "", "console", "table", "text":
		fmt.Fprint(cmd.OutOrStdout(), (&solver.TableFormatter{Currency: a.currency}).Format(result))
	case "json":
		data, err := (&solver.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), data)
	default:
		// Every other format renders the resulting loan as a regular calculation
		out := &domain.CalculationOutcome{
			Request: domain.CalculationRequest{Name: "solved_" + string(result.Request.Target), Kind: domain.KindEMI, Loan: &result.Loan},
			Loan:    &result.Summary,
		}
		return a.render(cmd, out)
	}
	return nil
}

func init() {
	solveCmd.AddCommand(
		solveSubCmd(solver.SolveRate, "rate", "Interest rate at which a loan is repaid by the given EMI",
			"  fincalc solve rate --principal 500000 --tenure 36 --emi 16607.15", "principal", "tenure"),
		solveSubCmd(solver.SolveTenure, "tenure", "Fewest months in which the given EMI repays a loan",
			"  fincalc solve tenure --principal 500000 --rate 12 --emi 20000", "principal", "rate"),
		solveSubCmd(solver.SolvePrincipal, "principal", "Largest loan the given EMI can service",
			"  fincalc solve principal --rate 12 --tenure 36 --emi 16607.15", "rate", "tenure"),
	)
	rootCmd.AddCommand(solveCmd)
}
