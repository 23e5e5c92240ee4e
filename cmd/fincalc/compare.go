package main

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/compare"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a loan against alternative scenarios",
	Long: "Compare a base loan against alternatives built from templates (--with) or\n" +
		"ad-hoc transforms (--transform). Each template or transform yields one alternative.",
	Example: "  fincalc compare --principal 500000 --rate 8.5 --tenure 36 --with rate_cut_50bp,prepay_1l_yr1\n" +
		"  fincalc compare --principal 500000 --rate 8.5 --tenure 36 --transform add_prepayment:amount=50000,at=6",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		base, err := scenarioFromFlags(cmd)
		if err != nil {
			return err
		}
		with, _ := cmd.Flags().GetStringSlice("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		if len(with) == 0 && len(transforms) == 0 {
			return fmt.Errorf("nothing to compare: use --with or --transform (see --list-templates)")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		engine := compare.NewCompareEngine(a.engine)
		compSet, err := engine.Compare(cmd.Context(), base, compare.CompareOptions{
			Templates:  with,
			Transforms: transforms,
		})
		if err != nil {
			return err
		}

		table := &compare.TableFormatter{Currency: a.currency}
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			fmt.Fprint(cmd.OutOrStdout(), table.FormatCompact(compSet))
			return nil
		}
		format, _ := cmd.Flags().GetString("format")
		report, err := compare.Render(compSet, format, table)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report)
		return nil
	},
}

func scenarioFromFlags(cmd *cobra.Command) (*domain.LoanScenario, error) {
	loan, err := loanFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("name")
	scenario := &domain.LoanScenario{Name: name, Loan: loan}

	amount, err := optionalDecimal(cmd, "prepay")
	if err != nil {
		return nil, err
	}
	if amount.IsPositive() {
		at, _ := cmd.Flags().GetInt("prepay-at")
		scenario.Prepayment = &domain.PrepaymentScenario{ExtraAmount: amount, AtPeriod: at, Strategy: domain.ReduceTenure}
	}
	return scenario, nil
}

func init() {
	addLoanFlags(compareCmd)
	compareCmd.Flags().String("prepay", "", "Prepayment already planned on the base loan")
	compareCmd.Flags().Int("prepay-at", 12, "Installment after which the base prepayment is made")
	compareCmd.Flags().StringSlice("with", nil, "Comma-separated template names")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	compareCmd.Flags().Bool("list-templates", false, "List the available templates and exit")
	compareCmd.Flags().Bool("compact", false, "One line per scenario")

	rootCmd.AddCommand(compareCmd)
}
