package domain

import (
	"github.com/shopspring/decimal"
)

// AgeBand selects age-dependent slab tables
type AgeBand string

const (
	AgeUnder60        AgeBand = "under60"
	AgeSenior60to80   AgeBand = "senior60to80"
	AgeSuperSenior80p AgeBand = "superSenior80plus"
)

// Valid reports whether the band is one of the known bands. The empty band is
// treated as AgeUnder60 by callers.
func (a AgeBand) Valid() bool {
	switch a {
	case "", AgeUnder60, AgeSenior60to80, AgeSuperSenior80p:
		return true
	}
	return false
}

// TaxRegimeInput is the income side of a tax calculation
type TaxRegimeInput struct {
	GrossIncome        decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	EligibleDeductions decimal.Decimal `yaml:"eligible_deductions" json:"eligibleDeductions"`
	FinancialYear      string          `yaml:"financial_year" json:"financialYear"`
	AgeBand            AgeBand         `yaml:"age_band" json:"ageBand"`
}

// TaxSlab is one marginal bracket. A nil UpperBound means the slab is unbounded.
type TaxSlab struct {
	LowerBound  decimal.Decimal  `yaml:"lower_bound" json:"lowerBound"`
	UpperBound  *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upperBound,omitempty"`
	RatePercent decimal.Decimal  `yaml:"rate_percent" json:"ratePercent"`
}

// Unbounded reports whether the slab extends to infinity
func (s TaxSlab) Unbounded() bool {
	return s.UpperBound == nil
}

// SurchargeBand levies RatePercent of the tax when gross income exceeds Threshold
type SurchargeBand struct {
	Threshold   decimal.Decimal `yaml:"threshold" json:"threshold"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

// TaxRegime is a complete set of rules for one regime in one financial year
type TaxRegime struct {
	ID                       string                `yaml:"id" json:"id"`
	Name                     string                `yaml:"name" json:"name"`
	FinancialYear            string                `yaml:"financial_year" json:"financialYear"`
	StandardDeduction        decimal.Decimal       `yaml:"standard_deduction" json:"standardDeduction"`
	AllowsItemizedDeductions bool                  `yaml:"allows_itemized_deductions" json:"allowsItemizedDeductions"`
	Slabs                    []TaxSlab             `yaml:"slabs" json:"slabs"`
	AgeBandSlabs             map[AgeBand][]TaxSlab `yaml:"age_band_slabs,omitempty" json:"ageBandSlabs,omitempty"`
	RebateThreshold          decimal.Decimal       `yaml:"rebate_threshold" json:"rebateThreshold"`
	SurchargeBands           []SurchargeBand       `yaml:"surcharge_bands,omitempty" json:"surchargeBands,omitempty"`
	SurchargeMarginalRelief  bool                  `yaml:"surcharge_marginal_relief" json:"surchargeMarginalRelief"`
	CessPercent              decimal.Decimal       `yaml:"cess_percent" json:"cessPercent"`
}

// SlabsFor returns the slab table for an age band, falling back to Slabs
func (r TaxRegime) SlabsFor(band AgeBand) []TaxSlab {
	if slabs, ok := r.AgeBandSlabs[band]; ok && len(slabs) > 0 {
		return slabs
	}
	return r.Slabs
}

// Key identifies a regime within a financial year, e.g. "new@2024-25"
func (r TaxRegime) Key() string {
	if r.FinancialYear == "" {
		return r.ID
	}
	return r.ID + "@" + r.FinancialYear
}

// TaxResult is the outcome of applying a regime to an income
type TaxResult struct {
	Regime               string          `yaml:"regime,omitempty" json:"regime,omitempty"`
	TaxableIncome        decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`
	SlabTax              decimal.Decimal `yaml:"slab_tax" json:"slabTax"` // before the rebate
	TaxBeforeCess        decimal.Decimal `yaml:"tax_before_cess" json:"taxBeforeCess"`
	RebateApplied        bool            `yaml:"rebate_applied" json:"rebateApplied"`
	Surcharge            decimal.Decimal `yaml:"surcharge" json:"surcharge"`
	Cess                 decimal.Decimal `yaml:"cess" json:"cess"`
	TotalTax             decimal.Decimal `yaml:"total_tax" json:"totalTax"`
	EffectiveRatePercent decimal.Decimal `yaml:"effective_rate_percent" json:"effectiveRatePercent"`
}

// RegimeComparison is the result of running two regimes over the same income
type RegimeComparison struct {
	Recommended string          `yaml:"recommended" json:"recommended"`
	TaxA        TaxResult       `yaml:"tax_a" json:"taxA"`
	TaxB        TaxResult       `yaml:"tax_b" json:"taxB"`
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
}
