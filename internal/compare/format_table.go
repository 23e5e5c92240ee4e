package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	Currency *output.CurrencyFormatter // nil uses the en-IN rupee formatter
}

func (tf *TableFormatter) currency() *output.CurrencyFormatter {
	if tf.Currency == nil {
		return output.DefaultCurrency()
	}
	return tf.Currency
}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("LOAN SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if base := compSet.BaseResult; base != nil && base.Scenario != nil {
		sb.WriteString(fmt.Sprintf("Loan: %s at %s%% for %d months\n",
			tf.currency().Format(base.Scenario.Loan.Principal),
			base.Scenario.Loan.AnnualRatePercent.String(),
			base.Scenario.Loan.TenureMonths))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "EMI",
		numWidth, "Total Interest",
		numWidth, "Tenure"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Total Interest:   %s (%s%%)\n",
				tf.signed(alt.InterestDiffFromBase),
				alt.InterestPctFromBase.StringFixed(1)))

			if !alt.InstallmentDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  EMI:              %s\n", tf.signed(alt.InstallmentDiffFromBase)))
			}

			if alt.TenureDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Tenure:           %+d months\n", alt.TenureDiffFromBase))
			}

			if alt.Prepayment != nil && alt.Scenario != nil && alt.Scenario.Prepayment != nil &&
				!alt.RevisedInstallment.Equal(alt.Installment) && alt.RevisedInstallment.IsPositive() {
				sb.WriteString(fmt.Sprintf("  EMI after prepay: %s\n", tf.currency().Format(alt.RevisedInstallment)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.currency().Format(result.Installment),
		numWidth, tf.currency().Format(result.TotalInterest),
		numWidth, fmt.Sprintf("%d months", result.EffectiveTenure))
}

// signed renders a delta with an explicit sign; zero has none
func (tf *TableFormatter) signed(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + tf.currency().Format(delta)
	}
	return tf.currency().Format(delta)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.InterestDiffFromBase.IsZero() {
			change = tf.signed(alt.InterestDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
