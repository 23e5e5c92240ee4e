package domain

import (
	"github.com/shopspring/decimal"
)

// CompoundingMode selects how a GrowthInputs is projected
type CompoundingMode string

const (
	// Lumpsum compounds InitialAmount annually; Periods is in years.
	Lumpsum CompoundingMode = "lumpsum"
	// RecurringMonthly is SIP-style: PeriodicContribution at the start of every
	// month, compounded monthly; Periods is in months.
	RecurringMonthly CompoundingMode = "recurring_monthly"
	// FixedAnnual is NSC/PPF-style: InitialAmount plus PeriodicContribution at
	// the start of every year, compounded annually; Periods is in years.
	FixedAnnual CompoundingMode = "fixed_annual"
)

// GrowthInputs describes an investment to project
type GrowthInputs struct {
	InitialAmount        decimal.Decimal `yaml:"initial_amount" json:"initialAmount"`
	PeriodicContribution decimal.Decimal `yaml:"periodic_contribution" json:"periodicContribution"`
	AnnualRatePercent    decimal.Decimal `yaml:"annual_rate_percent" json:"annualRatePercent"`
	Periods              int             `yaml:"periods" json:"periods"`
	Mode                 CompoundingMode `yaml:"mode" json:"mode"`
}

// GrowthSnapshot is the balance at one compounding boundary
type GrowthSnapshot struct {
	Period         int             `yaml:"period" json:"period"`
	Balance        decimal.Decimal `yaml:"balance" json:"balance"`
	GainThisPeriod decimal.Decimal `yaml:"gain_this_period" json:"gainThisPeriod"`
}

// GrowthResult is a projection. MaturityValue == TotalContributed + TotalGain.
type GrowthResult struct {
	MaturityValue    decimal.Decimal  `yaml:"maturity_value" json:"maturityValue"`
	TotalContributed decimal.Decimal  `yaml:"total_contributed" json:"totalContributed"`
	TotalGain        decimal.Decimal  `yaml:"total_gain" json:"totalGain"`
	AnnualBreakdown  []GrowthSnapshot `yaml:"annual_breakdown" json:"annualBreakdown"`
}

// CAGRInputs are the three numbers a CAGR calculator takes
type CAGRInputs struct {
	Initial decimal.Decimal `yaml:"initial" json:"initial"`
	Final   decimal.Decimal `yaml:"final" json:"final"`
	Years   decimal.Decimal `yaml:"years" json:"years"`
}

// CAGRResult holds the annualized and absolute returns
type CAGRResult struct {
	CAGRPercent           decimal.Decimal `yaml:"cagr_percent" json:"cagrPercent"`
	AbsoluteReturn        decimal.Decimal `yaml:"absolute_return" json:"absoluteReturn"`
	AbsoluteReturnPercent decimal.Decimal `yaml:"absolute_return_percent" json:"absoluteReturnPercent"`
}
