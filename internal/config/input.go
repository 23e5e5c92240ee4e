package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a configuration document
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	for i, regime := range config.Regimes {
		if _, err := calculation.NewRegimeBook(regime); err != nil {
			return fmt.Errorf("regime %d (%s) validation failed: %w", i, regime.Key(), err)
		}
	}
	seen := make(map[string]bool)
	for i, profile := range config.Profiles {
		if err := ip.validateProfile(&profile); err != nil {
			return fmt.Errorf("profile %d (%s) validation failed: %w", i, profile.ID, err)
		}
		if seen[profile.ID] {
			return fmt.Errorf("duplicate profile id %q", profile.ID)
		}
		seen[profile.ID] = true
	}
	for i, req := range config.Requests {
		if err := ip.validateRequest(&req); err != nil {
			return fmt.Errorf("request %d (%s) validation failed: %w", i, req.Label(), err)
		}
	}
	return nil
}

func validKind(kind domain.CalculationKind) bool {
	for _, k := range domain.AllKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// validateProfile validates a single calculator profile
func (ip *InputParser) validateProfile(profile *domain.CalculatorProfile) error {
	if profile.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validKind(profile.Kind) {
		return fmt.Errorf("unknown kind %q", profile.Kind)
	}
	if profile.Kind == domain.KindGrowth {
		switch profile.Mode {
		case domain.Lumpsum, domain.RecurringMonthly, domain.FixedAnnual:
		default:
			return fmt.Errorf("growth profiles need a mode, got %q", profile.Mode)
		}
	}
	if len(profile.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	for _, f := range profile.Fields {
		if f.Name == "" {
			return fmt.Errorf("field name is required")
		}
		if f.Min.GreaterThan(f.Max) {
			return fmt.Errorf("field %s: min %s is greater than max %s", f.Name, f.Min, f.Max)
		}
		if !f.Step.IsPositive() {
			return fmt.Errorf("field %s: step must be positive", f.Name)
		}
		if f.Default.LessThan(f.Min) || f.Default.GreaterThan(f.Max) {
			return fmt.Errorf("field %s: default %s outside [%s, %s]", f.Name, f.Default, f.Min, f.Max)
		}
	}
	return nil
}

// validateRequest checks that a request carries the section its kind needs.
// Numeric checks are left to the engine.
func (ip *InputParser) validateRequest(req *domain.CalculationRequest) error {
	var missing string
	switch req.Kind {
	case domain.KindEMI, domain.KindSchedule:
		if req.Loan == nil {
			missing = "loan"
		}
	case domain.KindPrepayment:
		if req.Loan == nil {
			missing = "loan"
		} else if req.Prepayment == nil {
			missing = "prepayment"
		}
	case domain.KindCAGR:
		if req.CAGR == nil {
			missing = "cagr"
		}
	case domain.KindGrowth:
		if req.Growth == nil {
			missing = "growth"
		}
	case domain.KindTax, domain.KindTaxCompare:
		if req.Tax == nil {
			missing = "tax"
		}
	case domain.KindGST:
		if req.GST == nil {
			missing = "gst"
		}
	default:
		return fmt.Errorf("unknown kind %q", req.Kind)
	}
	if missing != "" {
		return fmt.Errorf("%s section is required for kind %s", missing, req.Kind)
	}
	return nil
}

// DefaultConfiguration returns the embedded regimes and profiles
func DefaultConfiguration() (*domain.Configuration, error) {
	config, err := NewInputParser().LoadFromBytes(defaultsYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	return config, nil
}

// Merge layers a user configuration over the defaults. Regimes with the same
// id and financial year and profiles with the same id are replaced; requests
// come from the user configuration only.
func Merge(defaults, user *domain.Configuration) *domain.Configuration {
	merged := &domain.Configuration{DefaultRegime: defaults.DefaultRegime}
	if user == nil {
		user = &domain.Configuration{}
	}
	if user.DefaultRegime != "" {
		merged.DefaultRegime = user.DefaultRegime
	}

	regimeIndex := make(map[string]int)
	for _, r := range append(append([]domain.TaxRegime{}, defaults.Regimes...), user.Regimes...) {
		if i, ok := regimeIndex[r.Key()]; ok {
			merged.Regimes[i] = r
			continue
		}
		regimeIndex[r.Key()] = len(merged.Regimes)
		merged.Regimes = append(merged.Regimes, r)
	}

	profileIndex := make(map[string]int)
	for _, p := range append(append([]domain.CalculatorProfile{}, defaults.Profiles...), user.Profiles...) {
		if i, ok := profileIndex[p.ID]; ok {
			merged.Profiles[i] = p
			continue
		}
		profileIndex[p.ID] = len(merged.Profiles)
		merged.Profiles = append(merged.Profiles, p)
	}

	merged.Requests = user.Requests
	return merged
}

// NewEngine builds a calculation engine over the configuration's regimes
func NewEngine(config *domain.Configuration) (*calculation.CalculationEngine, error) {
	book, err := calculation.NewRegimeBook(config.Regimes...)
	if err != nil {
		return nil, fmt.Errorf("failed to index regimes: %w", err)
	}
	return calculation.NewCalculationEngineWithRegimes(book, config.DefaultRegime), nil
}

// Profile finds a calculator profile by id
func Profile(config *domain.Configuration, id string) (domain.CalculatorProfile, error) {
	for _, p := range config.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.CalculatorProfile{}, fmt.Errorf("unknown profile %q", id)
}
