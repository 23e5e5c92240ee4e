package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationKind names one calculator
type CalculationKind string

const (
	KindEMI        CalculationKind = "emi"
	KindSchedule   CalculationKind = "schedule"
	KindPrepayment CalculationKind = "prepayment"
	KindCAGR       CalculationKind = "cagr"
	KindGrowth     CalculationKind = "growth"
	KindTax        CalculationKind = "tax"
	KindTaxCompare CalculationKind = "tax_compare"
	KindGST        CalculationKind = "gst"
)

// AllKinds lists every calculator kind in display order
var AllKinds = []CalculationKind{
	KindEMI, KindSchedule, KindPrepayment, KindCAGR, KindGrowth, KindTax, KindTaxCompare, KindGST,
}

// CalculationRequest is a single calculator invocation as read from a batch
// file or built by the CLI. Only the section matching Kind is consulted.
type CalculationRequest struct {
	Name       string              `yaml:"name,omitempty" json:"name,omitempty"`
	Kind       CalculationKind     `yaml:"kind" json:"kind"`
	Loan       *LoanInputs         `yaml:"loan,omitempty" json:"loan,omitempty"`
	Prepayment *PrepaymentScenario `yaml:"prepayment,omitempty" json:"prepayment,omitempty"`
	Growth     *GrowthInputs       `yaml:"growth,omitempty" json:"growth,omitempty"`
	CAGR       *CAGRInputs         `yaml:"cagr,omitempty" json:"cagr,omitempty"`
	Tax        *TaxRegimeInput     `yaml:"tax,omitempty" json:"tax,omitempty"`
	Regimes    []string            `yaml:"regimes,omitempty" json:"regimes,omitempty"` // regime IDs; tax uses the first, tax_compare the first two
	GST        *GSTInput           `yaml:"gst,omitempty" json:"gst,omitempty"`
}

// Label returns the request name, or its kind when unnamed
func (r CalculationRequest) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return string(r.Kind)
}

// CalculationOutcome carries whichever results the request's kind produced
type CalculationOutcome struct {
	Request          CalculationRequest  `yaml:"request" json:"request"`
	Loan             *LoanSummary        `yaml:"loan,omitempty" json:"loan,omitempty"`
	Schedule         []AmortizationEntry `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Prepayment       *PrepaymentResult   `yaml:"prepayment,omitempty" json:"prepayment,omitempty"`
	CAGR             *CAGRResult         `yaml:"cagr,omitempty" json:"cagr,omitempty"`
	Growth           *GrowthResult       `yaml:"growth,omitempty" json:"growth,omitempty"`
	Tax              *TaxResult          `yaml:"tax,omitempty" json:"tax,omitempty"`
	RegimeComparison *RegimeComparison   `yaml:"regime_comparison,omitempty" json:"regimeComparison,omitempty"`
	GST              *GSTResult          `yaml:"gst,omitempty" json:"gst,omitempty"`
}

// HistoryRecord is what the persistence collaborator stores for one calculation
type HistoryRecord struct {
	ID        string              `yaml:"id" json:"id"`
	Kind      CalculationKind     `yaml:"kind" json:"kind"`
	Inputs    CalculationRequest  `yaml:"inputs" json:"inputs"`
	Results   *CalculationOutcome `yaml:"results" json:"results"`
	Timestamp time.Time           `yaml:"timestamp" json:"timestamp"`
}

// ProfileField is one adjustable input on a calculator page
type ProfileField struct {
	Name    string          `yaml:"name" json:"name"`
	Label   string          `yaml:"label" json:"label"`
	Min     decimal.Decimal `yaml:"min" json:"min"`
	Max     decimal.Decimal `yaml:"max" json:"max"`
	Step    decimal.Decimal `yaml:"step" json:"step"`
	Default decimal.Decimal `yaml:"default" json:"default"`
	Unit    string          `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// CalculatorProfile holds the page-specific defaults of one calculator
// (ranges, steps, labels) so the engine itself stays parameter-free.
type CalculatorProfile struct {
	ID     string          `yaml:"id" json:"id"`
	Kind   CalculationKind `yaml:"kind" json:"kind"`
	Label  string          `yaml:"label" json:"label"`
	Mode   CompoundingMode `yaml:"mode,omitempty" json:"mode,omitempty"`
	Fields []ProfileField  `yaml:"fields" json:"fields"`
}

// Field looks up a field by name
func (p CalculatorProfile) Field(name string) (ProfileField, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ProfileField{}, false
}

// Configuration is the top-level YAML document accepted by the CLI
type Configuration struct {
	DefaultRegime string               `yaml:"default_regime,omitempty" json:"defaultRegime,omitempty"`
	Regimes       []TaxRegime          `yaml:"regimes,omitempty" json:"regimes,omitempty"`
	Profiles      []CalculatorProfile  `yaml:"profiles,omitempty" json:"profiles,omitempty"`
	Requests      []CalculationRequest `yaml:"requests,omitempty" json:"requests,omitempty"`
}
