package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Formatter renders calculation outcomes
type Formatter interface {
	Name() string
	Format(outcomes []*domain.CalculationOutcome) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(outcomes []*domain.CalculationOutcome) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(outcomes []*domain.CalculationOutcome) ([]byte, error) {
	return f.F(outcomes)
}

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-full": ConsoleFormatter{FullSchedule: true},
	"csv":          CSVFormatter{},
	"schedule-csv": ScheduleCSVFormatter{},
	"json":         JSONFormatter{},
	"yaml":         YAMLFormatter{},
}

var formatAliases = map[string]string{
	"table":   "console",
	"text":    "console",
	"verbose": "console-full",
	"yml":     "yaml",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none.
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats outcomes into a timestamped file in the working
// directory and returns its name.
func WriteFormatted(f Formatter, outcomes []*domain.CalculationOutcome, ext string) (string, error) {
	data, err := f.Format(outcomes)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("fincalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
