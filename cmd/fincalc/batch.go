package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input-file]",
	Short: "Run every request in a YAML file",
	Long: "Run every request in a YAML file. Regimes and profiles defined in the file\n" +
		"are layered over the built-in ones. Processing stops at the first failing request.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		doc, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}
		if len(doc.Requests) == 0 {
			return fmt.Errorf("%s contains no requests", inputFile)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		if len(doc.Regimes) > 0 || doc.DefaultRegime != "" {
			if err := a.configure(config.Merge(a.config, doc)); err != nil {
				return err
			}
		}

		outcomes := make([]*domain.CalculationOutcome, 0, len(doc.Requests))
		for i, req := range doc.Requests {
			out, err := a.run(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			outcomes = append(outcomes, out)
		}
		a.logger.Infof("processed %d requests from %s", len(outcomes), inputFile)

		if save, _ := cmd.Flags().GetBool("save"); save {
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}
			filename, err := output.WriteFormatted(f, outcomes, extensionFor(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}
		return a.render(cmd, outcomes...)
	},
}

func extensionFor(formatter string) string {
	switch formatter {
	case "csv", "schedule-csv":
		return "csv"
	case "json":
		return "json"
	case "yaml":
		return "yaml"
	default:
		return "txt"
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		doc, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d regimes, %d profiles, %d requests)\n",
			inputFile, len(doc.Regimes), len(doc.Profiles), len(doc.Requests))
		return nil
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the calculator profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		verbose, _ := cmd.Flags().GetBool("fields")
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-16s %-12s %s\n", "ID", "KIND", "LABEL")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, p := range a.config.Profiles {
			fmt.Fprintf(w, "%-16s %-12s %s\n", p.ID, p.Kind, p.Label)
			if verbose {
				for _, f := range p.Fields {
					fmt.Fprintf(w, "    %-22s %s..%s step %s, default %s %s\n",
						f.Name, f.Min.String(), f.Max.String(), f.Step.String(), f.Default.String(), f.Unit)
				}
			}
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [profile-id]",
	Short: "Run a calculator profile with its defaults",
	Example: "  fincalc run home_loan\n" +
		"  fincalc run sip --set periodic_contribution=5000 --set periods=240",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		profile, err := config.Profile(a.config, args[0])
		if err != nil {
			return err
		}
		values := config.DefaultValues(profile)
		sets, _ := cmd.Flags().GetStringArray("set")
		for _, set := range sets {
			name, raw, ok := strings.Cut(set, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q (expected field=value)", set)
			}
			name = strings.TrimSpace(name)
			if _, known := profile.Field(name); !known {
				return fmt.Errorf("profile %s has no field %q (fields: %s)", profile.ID, name, strings.Join(fieldNames(profile), ", "))
			}
			v, err := output.ParseAmount(raw)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			values[name] = v
		}

		out, err := a.run(cmd.Context(), config.RequestFromProfile(profile, values))
		if err != nil {
			return err
		}
		return a.render(cmd, out)
	},
}

func fieldNames(p domain.CalculatorProfile) []string {
	names := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

var regimesCmd = &cobra.Command{
	Use:   "regimes",
	Short: "List the tax regimes on file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-14s %-30s %12s %12s %6s\n", "KEY", "NAME", "STD DEDUCT", "REBATE UPTO", "SLABS")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, r := range a.engine.Regimes.All() {
			marker := ""
			if r.ID == a.engine.DefaultRegime {
				marker = " *"
			}
			fmt.Fprintf(w, "%-14s %-30s %12s %12s %6d%s\n", r.Key(), r.Name,
				a.currency.Format(r.StandardDeduction), a.currency.Format(r.RebateThreshold), len(r.Slabs), marker)
		}
		fmt.Fprintln(w, "\n* default regime")
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [output-file]",
	Short: "Write the built-in regimes and profiles to a YAML file for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := config.DefaultConfiguration()
		if err != nil {
			return err
		}
		defaults.Requests = []domain.CalculationRequest{exampleRequest()}
		if err := output.SaveConfiguration(defaults, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
		return nil
	},
}

func exampleRequest() domain.CalculationRequest {
	return domain.CalculationRequest{
		Name: "example_loan",
		Kind: domain.KindEMI,
		Loan: &domain.LoanInputs{
			Principal:         decimal.NewFromInt(500000),
			AnnualRatePercent: decimal.NewFromInt(12),
			TenureMonths:      36,
		},
	}
}

func init() {
	batchCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	profilesCmd.Flags().Bool("fields", false, "Show each profile's fields and ranges")
	runCmd.Flags().StringArray("set", nil, "Override a profile field, field=value (repeatable)")

	rootCmd.AddCommand(batchCmd, validateCmd, profilesCmd, runCmd, regimesCmd, initConfigCmd)
}
