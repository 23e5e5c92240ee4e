package config

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultValues returns each field's default, keyed by field name
func DefaultValues(p domain.CalculatorProfile) map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal, len(p.Fields))
	for _, f := range p.Fields {
		values[f.Name] = f.Default
	}
	return values
}

// RequestFromProfile turns a profile and the current field values into a
// request. Fields missing from values take their defaults.
func RequestFromProfile(p domain.CalculatorProfile, values map[string]decimal.Decimal) domain.CalculationRequest {
	get := func(name string) decimal.Decimal {
		if v, ok := values[name]; ok {
			return v
		}
		if f, ok := p.Field(name); ok {
			return f.Default
		}
		return decimal.Zero
	}
	months := func(name string) int {
		return int(get(name).IntPart())
	}

	req := domain.CalculationRequest{Name: p.ID, Kind: p.Kind}
	switch p.Kind {
	case domain.KindEMI, domain.KindSchedule, domain.KindPrepayment:
		req.Loan = &domain.LoanInputs{
			Principal:         get("principal"),
			AnnualRatePercent: get("annual_rate_percent"),
			TenureMonths:      months("tenure_months"),
		}
		if p.Kind == domain.KindPrepayment {
			req.Prepayment = &domain.PrepaymentScenario{
				ExtraAmount: get("extra_amount"),
				AtPeriod:    months("at_period"),
				Strategy:    domain.ReduceTenure,
			}
		}
	case domain.KindGrowth:
		req.Growth = &domain.GrowthInputs{
			InitialAmount:        get("initial_amount"),
			PeriodicContribution: get("periodic_contribution"),
			AnnualRatePercent:    get("annual_rate_percent"),
			Periods:              months("periods"),
			Mode:                 p.Mode,
		}
	case domain.KindCAGR:
		req.CAGR = &domain.CAGRInputs{Initial: get("initial"), Final: get("final"), Years: get("years")}
	case domain.KindTax, domain.KindTaxCompare:
		req.Tax = &domain.TaxRegimeInput{
			GrossIncome:        get("gross_income"),
			EligibleDeductions: get("eligible_deductions"),
		}
	case domain.KindGST:
		req.GST = &domain.GSTInput{
			Amount:       get("amount"),
			RatePercent:  get("rate_percent"),
			Mode:         domain.GSTExclusive,
			Jurisdiction: domain.IntraState,
		}
	}
	return req
}
