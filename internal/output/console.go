package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// scheduleHeadRows is how many leading schedule rows the short console view keeps
const scheduleHeadRows = 12

// ConsoleFormatter renders outcomes as aligned text
type ConsoleFormatter struct {
	Currency     *CurrencyFormatter
	FullSchedule bool
}

func (c ConsoleFormatter) Name() string {
	if c.FullSchedule {
		return "console-full"
	}
	return "console"
}

func (c ConsoleFormatter) currency() *CurrencyFormatter {
	if c.Currency == nil {
		return DefaultCurrency()
	}
	return c.Currency
}

func (c ConsoleFormatter) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	for i, out := range outcomes {
		if i > 0 {
			buf.WriteString("\n")
		}
		c.writeOutcome(buf, out)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeOutcome(buf *bytes.Buffer, out *domain.CalculationOutcome) {
	title := fmt.Sprintf("%s (%s)", out.Request.Label(), out.Request.Kind)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))

	metrics := Metrics(out)
	width := 0
	for _, m := range metrics {
		if len(m.Label) > width {
			width = len(m.Label)
		}
	}
	for _, m := range metrics {
		fmt.Fprintf(buf, "%-*s  %s\n", width, m.Label, c.render(m))
	}

	if len(out.Schedule) > 0 {
		buf.WriteString("\n")
		c.writeSchedule(buf, out.Schedule)
	}
	if out.Growth != nil && len(out.Growth.AnnualBreakdown) > 0 {
		buf.WriteString("\n")
		c.writeBreakdown(buf, out.Growth.AnnualBreakdown)
	}
}

func (c ConsoleFormatter) render(m Metric) string {
	switch m.Kind {
	case Money:
		return c.currency().Format(m.Value)
	case Percent:
		return FormatPercentage(m.Value)
	case Count:
		return m.Value.String()
	default:
		return m.Text
	}
}

func (c ConsoleFormatter) writeSchedule(buf *bytes.Buffer, schedule []domain.AmortizationEntry) {
	cur := c.currency()
	fmt.Fprintf(buf, "%6s %16s %14s %14s %16s\n", "Month", "Opening", "Interest", "Principal", "Closing")
	for i, e := range schedule {
		if !c.FullSchedule && i == scheduleHeadRows && len(schedule) > scheduleHeadRows+1 {
			fmt.Fprintf(buf, "%6s ... %d more months ...\n", "", len(schedule)-scheduleHeadRows-1)
			e = schedule[len(schedule)-1]
			fmt.Fprintf(buf, "%6d %16s %14s %14s %16s\n", e.Period,
				cur.Format(e.OpeningBalance), cur.Format(e.InterestPortion), cur.Format(e.PrincipalPortion), cur.Format(e.ClosingBalance))
			return
		}
		fmt.Fprintf(buf, "%6d %16s %14s %14s %16s\n", e.Period,
			cur.Format(e.OpeningBalance), cur.Format(e.InterestPortion), cur.Format(e.PrincipalPortion), cur.Format(e.ClosingBalance))
	}
}

func (c ConsoleFormatter) writeBreakdown(buf *bytes.Buffer, breakdown []domain.GrowthSnapshot) {
	cur := c.currency()
	fmt.Fprintf(buf, "%6s %18s %16s\n", "Year", "Balance", "Gain")
	for _, s := range breakdown {
		fmt.Fprintf(buf, "%6d %18s %16s\n", s.Period, cur.Format(s.Balance), cur.Format(s.GainThisPeriod))
	}
}
