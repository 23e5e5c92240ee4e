package output

import (
	"strconv"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MetricKind tells a formatter how to render a metric value
type MetricKind int

const (
	Money MetricKind = iota
	Percent
	Count
	Text
)

// Metric is one labelled figure of an outcome
type Metric struct {
	Key   string
	Label string
	Kind  MetricKind
	Value decimal.Decimal
	Text  string
}

func money(key, label string, v decimal.Decimal) Metric {
	return Metric{Key: key, Label: label, Kind: Money, Value: v}
}

func pct(key, label string, v decimal.Decimal) Metric {
	return Metric{Key: key, Label: label, Kind: Percent, Value: v}
}

func count(key, label string, n int) Metric {
	return Metric{Key: key, Label: label, Kind: Count, Value: decimal.NewFromInt(int64(n))}
}

func text(key, label, s string) Metric {
	return Metric{Key: key, Label: label, Kind: Text, Text: s}
}

// Metrics flattens an outcome into the figures a calculator page shows
func Metrics(out *domain.CalculationOutcome) []Metric {
	var m []Metric
	if out.Loan != nil {
		m = append(m,
			money("installment", "Monthly EMI", out.Loan.Installment),
			money("total_interest", "Total interest", out.Loan.TotalInterest),
			money("total_payment", "Total payment", out.Loan.TotalPayment),
			count("tenure_months", "Tenure (months)", out.Loan.TenureMonths),
		)
	}
	if p := out.Prepayment; p != nil {
		m = append(m,
			money("outstanding_balance", "Outstanding before prepayment", p.OutstandingBalance),
			money("baseline_interest", "Interest without prepayment", p.BaselineInterest),
			money("revised_interest", "Interest with prepayment", p.RevisedInterest),
			money("interest_saved", "Interest saved", p.InterestSaved),
			count("tenure_reduction_periods", "Tenure reduced by (months)", p.TenureReductionPeriods),
			money("revised_installment", "Installment after prepayment", p.RevisedInstallment),
		)
	}
	if c := out.CAGR; c != nil {
		m = append(m,
			pct("cagr_percent", "CAGR", c.CAGRPercent),
			money("absolute_return", "Absolute return", c.AbsoluteReturn),
			pct("absolute_return_percent", "Absolute return", c.AbsoluteReturnPercent),
		)
	}
	if g := out.Growth; g != nil {
		m = append(m,
			money("maturity_value", "Maturity value", g.MaturityValue),
			money("total_contributed", "Total invested", g.TotalContributed),
			money("total_gain", "Estimated returns", g.TotalGain),
		)
	}
	if t := out.Tax; t != nil {
		m = append(m, taxMetrics("", t)...)
	}
	if c := out.RegimeComparison; c != nil {
		m = append(m, taxMetrics("a.", &c.TaxA)...)
		m = append(m, taxMetrics("b.", &c.TaxB)...)
		m = append(m,
			text("recommended", "Recommended regime", c.Recommended),
			money("savings", "Savings", c.Savings),
		)
	}
	if g := out.GST; g != nil {
		m = append(m,
			money("base_amount", "Net amount", g.BaseAmount),
			money("tax_amount", "GST", g.TaxAmount),
			money("final_amount", "Gross amount", g.FinalAmount),
		)
		if out.Request.GST != nil && out.Request.GST.Jurisdiction == domain.InterState {
			m = append(m, money("igst", "IGST", g.SplitComponents.ComponentA))
		} else {
			m = append(m,
				money("cgst", "CGST", g.SplitComponents.ComponentA),
				money("sgst", "SGST", g.SplitComponents.ComponentB),
			)
		}
	}
	return m
}

func taxMetrics(prefix string, t *domain.TaxResult) []Metric {
	label := func(s string) string {
		if t.Regime == "" {
			return s
		}
		return s + " [" + t.Regime + "]"
	}
	return []Metric{
		money(prefix+"taxable_income", label("Taxable income"), t.TaxableIncome),
		money(prefix+"slab_tax", label("Slab tax"), t.SlabTax),
		text(prefix+"rebate_applied", label("Rebate applied"), strconv.FormatBool(t.RebateApplied)),
		money(prefix+"surcharge", label("Surcharge"), t.Surcharge),
		money(prefix+"cess", label("Cess"), t.Cess),
		money(prefix+"total_tax", label("Total tax"), t.TotalTax),
		pct(prefix+"effective_rate_percent", label("Effective rate"), t.EffectiveRatePercent),
	}
}
