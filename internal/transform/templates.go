package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []LoanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common loan what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Rate movements
	registry.Register(Template{
		Name:        "rate_cut_25bp",
		Description: "Interest rate cut by 0.25 percentage points",
		Transforms:  []LoanTransform{&AdjustRate{DeltaPercent: decimal.NewFromFloat(-0.25)}},
	})

	registry.Register(Template{
		Name:        "rate_cut_50bp",
		Description: "Interest rate cut by 0.50 percentage points",
		Transforms:  []LoanTransform{&AdjustRate{DeltaPercent: decimal.NewFromFloat(-0.5)}},
	})

	registry.Register(Template{
		Name:        "rate_hike_25bp",
		Description: "Interest rate hike by 0.25 percentage points",
		Transforms:  []LoanTransform{&AdjustRate{DeltaPercent: decimal.NewFromFloat(0.25)}},
	})

	registry.Register(Template{
		Name:        "rate_hike_50bp",
		Description: "Interest rate hike by 0.50 percentage points",
		Transforms:  []LoanTransform{&AdjustRate{DeltaPercent: decimal.NewFromFloat(0.5)}},
	})

	// Tenure changes
	registry.Register(Template{
		Name:        "tenure_plus_1yr",
		Description: "Extend the tenure by 1 year (12 months)",
		Transforms:  []LoanTransform{&ChangeTenure{DeltaMonths: 12}},
	})

	registry.Register(Template{
		Name:        "tenure_plus_5yr",
		Description: "Extend the tenure by 5 years (60 months)",
		Transforms:  []LoanTransform{&ChangeTenure{DeltaMonths: 60}},
	})

	registry.Register(Template{
		Name:        "tenure_minus_1yr",
		Description: "Shorten the tenure by 1 year (12 months)",
		Transforms:  []LoanTransform{&ChangeTenure{DeltaMonths: -12}},
	})

	registry.Register(Template{
		Name:        "tenure_minus_5yr",
		Description: "Shorten the tenure by 5 years (60 months)",
		Transforms:  []LoanTransform{&ChangeTenure{DeltaMonths: -60}},
	})

	// Prepayments
	registry.Register(Template{
		Name:        "prepay_1l_yr1",
		Description: "Prepay 1,00,000 after the 12th installment, keep the EMI",
		Transforms: []LoanTransform{
			&AddPrepayment{Amount: decimal.NewFromInt(100000), AtPeriod: 12, Strategy: domain.ReduceTenure},
		},
	})

	registry.Register(Template{
		Name:        "prepay_1l_yr1_emi",
		Description: "Prepay 1,00,000 after the 12th installment, keep the tenure",
		Transforms: []LoanTransform{
			&AddPrepayment{Amount: decimal.NewFromInt(100000), AtPeriod: 12, Strategy: domain.ReduceInstallment},
		},
	})

	registry.Register(Template{
		Name:        "prepay_5l_yr3",
		Description: "Prepay 5,00,000 after the 36th installment, keep the EMI",
		Transforms: []LoanTransform{
			&AddPrepayment{Amount: decimal.NewFromInt(500000), AtPeriod: 36, Strategy: domain.ReduceTenure},
		},
	})

	// Combinations
	registry.Register(Template{
		Name:        "refinance",
		Description: "Refinance: rate cut by 0.50 points and 1 year shorter tenure",
		Transforms: []LoanTransform{
			&AdjustRate{DeltaPercent: decimal.NewFromFloat(-0.5)},
			&ChangeTenure{DeltaMonths: -12},
		},
	})

	registry.Register(Template{
		Name:        "stretch",
		Description: "Lower EMI: rate hike by 0.25 points absorbed by 5 more years",
		Transforms: []LoanTransform{
			&AdjustRate{DeltaPercent: decimal.NewFromFloat(0.25)},
			&ChangeTenure{DeltaMonths: 60},
		},
	})

	return registry
}

// ApplyTemplate applies a template's transforms to a base scenario
func ApplyTemplate(base *domain.LoanScenario, template Template) (*domain.LoanScenario, error) {
	return Chain(template.Transforms).Apply(base)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Interest Rate", "Tenure", "Prepayment", "Combination Strategies"}
	categories := make(map[string][]Template, len(order))

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "rate_"):
			categories["Interest Rate"] = append(categories["Interest Rate"], template)
		case strings.HasPrefix(name, "tenure_"):
			categories["Tenure"] = append(categories["Tenure"], template)
		case strings.HasPrefix(name, "prepay_"):
			categories["Prepayment"] = append(categories["Prepayment"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fincalc compare --principal 500000 --rate 8.5 --tenure 36 --with rate_cut_50bp,prepay_1l_yr1\n")
	sb.WriteString("  fincalc compare --principal 500000 --rate 8.5 --tenure 36 --transform adjust_rate:delta=-1\n")

	return sb.String()
}
