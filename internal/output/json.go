package output

import (
	"encoding/json"
	"os"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the outcomes as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	return json.MarshalIndent(outcomes, "", "  ")
}

// YAMLFormatter emits the outcomes as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	return yaml.Marshal(outcomes)
}

// SaveConfiguration writes a configuration as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
