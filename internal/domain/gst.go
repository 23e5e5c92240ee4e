package domain

import (
	"github.com/shopspring/decimal"
)

// GSTMode says whether Amount excludes or already includes the tax
type GSTMode string

const (
	GSTExclusive GSTMode = "exclusive"
	GSTInclusive GSTMode = "inclusive"
)

// Jurisdiction decides how the tax is split
type Jurisdiction string

const (
	// IntraState splits the tax into two equal halves (CGST + SGST)
	IntraState Jurisdiction = "intra_state"
	// InterState keeps the tax undivided (IGST)
	InterState Jurisdiction = "inter_state"
)

// StandardGSTRates are the rate slabs offered by the calculator pages
var StandardGSTRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.25),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// GSTInput is a GST calculator request
type GSTInput struct {
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	RatePercent  decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
	Mode         GSTMode         `yaml:"mode" json:"mode"`
	Jurisdiction Jurisdiction    `yaml:"jurisdiction" json:"jurisdiction"`
}

// GSTSplit holds the component taxes. For inter-state supplies ComponentB is zero.
type GSTSplit struct {
	ComponentA decimal.Decimal `yaml:"component_a" json:"componentA"`
	ComponentB decimal.Decimal `yaml:"component_b" json:"componentB"`
}

// GSTResult is the outcome of a GST calculation
type GSTResult struct {
	BaseAmount      decimal.Decimal `yaml:"base_amount" json:"baseAmount"`
	TaxAmount       decimal.Decimal `yaml:"tax_amount" json:"taxAmount"`
	FinalAmount     decimal.Decimal `yaml:"final_amount" json:"finalAmount"`
	SplitComponents GSTSplit        `yaml:"split_components" json:"splitComponents"`
}
