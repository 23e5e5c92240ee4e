package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// CSVFormatter writes one row per metric, at full precision
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Request", "Kind", "Metric", "Value"}); err != nil {
		return nil, err
	}
	for _, out := range outcomes {
		for _, m := range Metrics(out) {
			value := m.Text
			if m.Kind != Text {
				value = m.Value.StringFixed(2)
			}
			if err := w.Write([]string{out.Request.Label(), string(out.Request.Kind), m.Key, value}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ScheduleCSVFormatter writes amortization rows for every outcome that has a schedule
type ScheduleCSVFormatter struct{}

func (s ScheduleCSVFormatter) Name() string { return "schedule-csv" }

func (s ScheduleCSVFormatter) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Request", "Period", "OpeningBalance", "Interest", "Principal", "ClosingBalance"}); err != nil {
		return nil, err
	}
	for _, out := range outcomes {
		for _, e := range out.Schedule {
			row := []string{
				out.Request.Label(),
				strconv.Itoa(e.Period),
				e.OpeningBalance.StringFixed(2),
				e.InterestPortion.StringFixed(2),
				e.PrincipalPortion.StringFixed(2),
				e.ClosingBalance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
