package main

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent calculations",
	Long: "Calculations are recorded when --history (or $FINCALC_HISTORY) names a store.\n" +
		"Only the most recent --history-limit records are kept.",
}

func historyApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	if a.store == nil {
		a.Close()
		return nil, fmt.Errorf("no history store configured (use --history or $FINCALC_HISTORY)")
	}
	return a, nil
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent calculations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := historyApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No calculations recorded")
			return nil
		}

		if full, _ := cmd.Flags().GetBool("results"); full {
			outcomes := make([]*domain.CalculationOutcome, 0, len(records))
			for _, rec := range records {
				if rec.Results != nil {
					outcomes = append(outcomes, rec.Results)
				}
			}
			return a.render(cmd, outcomes...)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s %-12s %-20s %s\n", "WHEN", "KIND", "NAME", "ID")
		for _, rec := range records {
			fmt.Fprintf(w, "%-20s %-12s %-20s %s\n",
				rec.Timestamp.Local().Format("2006-01-02 15:04:05"), rec.Kind, rec.Inputs.Label(), rec.ID)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded calculation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := historyApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyListCmd.Flags().Bool("results", false, "Render each record's results with --format")
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
