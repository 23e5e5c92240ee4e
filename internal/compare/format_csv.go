package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Principal",
		"Rate %",
		"Installment",
		"Revised Installment",
		"Total Interest",
		"Interest Saved",
		"Effective Tenure (Months)",
		"Installment Diff from Base",
		"Interest Diff from Base",
		"Interest % Change",
		"Tenure Diff (Months)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	principal, rate := "", ""
	if result.Scenario != nil {
		principal = result.Scenario.Loan.Principal.StringFixed(2)
		rate = result.Scenario.Loan.AnnualRatePercent.String()
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		principal,
		rate,
		result.Installment.StringFixed(2),
		result.RevisedInstallment.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		result.InterestSaved.StringFixed(2),
		strconv.Itoa(result.EffectiveTenure),
		result.InstallmentDiffFromBase.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
		result.InterestPctFromBase.StringFixed(2),
		strconv.Itoa(result.TenureDiffFromBase),
	}
}
