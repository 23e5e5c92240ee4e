package solver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/output"
)

// TableFormatter formats solver results for the console
type TableFormatter struct {
	Currency *output.CurrencyFormatter // nil uses the en-IN rupee formatter
}

// Format generates a formatted report for a solve
func (tf *TableFormatter) Format(result *Result) string {
	cur := tf.Currency
	if cur == nil {
		cur = output.DefaultCurrency()
	}

	var sb strings.Builder

	sb.WriteString("LOAN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Solve For:      %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Target EMI:     %s\n", cur.FormatPrecise(result.Request.Installment)))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", tf.formatStatus(result.Success)))
	if result.Iterations > 0 {
		sb.WriteString(fmt.Sprintf("Iterations:     %d\n", result.Iterations))
	}
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:    %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if result.RatePercent != nil {
		sb.WriteString(fmt.Sprintf("Annual Rate:    %s%%\n", result.RatePercent.StringFixed(4)))
	}
	if result.TenureMonths != nil {
		sb.WriteString(fmt.Sprintf("Tenure:         %d months (%d years %d months)\n",
			*result.TenureMonths, *result.TenureMonths/12, *result.TenureMonths%12))
	}
	if result.Principal != nil {
		sb.WriteString(fmt.Sprintf("Principal:      %s\n", cur.Format(*result.Principal)))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTING LOAN\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Principal:      %s\n", cur.Format(result.Loan.Principal)))
	sb.WriteString(fmt.Sprintf("Rate:           %s%%\n", result.Loan.AnnualRatePercent.StringFixed(4)))
	sb.WriteString(fmt.Sprintf("Tenure:         %d months\n", result.Loan.TenureMonths))
	sb.WriteString(fmt.Sprintf("EMI:            %s\n", cur.FormatPrecise(result.Summary.Installment)))
	sb.WriteString(fmt.Sprintf("Total Interest: %s\n", cur.Format(result.Summary.TotalInterest)))
	sb.WriteString(fmt.Sprintf("Total Payment:  %s\n", cur.Format(result.Summary.TotalPayment)))

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
