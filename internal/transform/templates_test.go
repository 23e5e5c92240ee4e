package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []LoanTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expectedTemplates := []string{
		"rate_cut_25bp",
		"rate_cut_50bp",
		"rate_hike_50bp",
		"tenure_plus_5yr",
		"tenure_minus_1yr",
		"prepay_1l_yr1",
		"prepay_1l_yr1_emi",
		"refinance",
	}

	for _, name := range expectedTemplates {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected to find template: %s", name)
			continue
		}
		if len(template.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
		if template.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestScenario()

	refinance, _ := registry.Get("refinance")
	result, err := ApplyTemplate(base, refinance)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Loan.AnnualRatePercent.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Expected rate 8, got %s", result.Loan.AnnualRatePercent)
	}
	if result.Loan.TenureMonths != 24 {
		t.Errorf("Expected tenure 24, got %d", result.Loan.TenureMonths)
	}

	prepay, _ := registry.Get("prepay_1l_yr1_emi")
	result, err = ApplyTemplate(base, prepay)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Prepayment == nil || result.Prepayment.Strategy != domain.ReduceInstallment {
		t.Errorf("Expected reduce_installment prepayment, got %+v", result.Prepayment)
	}

	// A 36 month loan cannot be shortened by 5 years
	shorter, _ := registry.Get("tenure_minus_5yr")
	if _, err := ApplyTemplate(base, shorter); err == nil {
		t.Error("Expected tenure_minus_5yr to fail on a 36 month loan")
	}

	empty, err := ApplyTemplate(base, Template{Name: "noop"})
	if err != nil || empty == base {
		t.Errorf("Expected a copy from an empty template, got %v / %v", empty, err)
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"rate_cut_25bp", []string{"rate_cut_25bp"}},
		{"rate_cut_25bp, prepay_1l_yr1 ,", []string{"rate_cut_25bp", "prepay_1l_yr1"}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("ParseTemplateList(%q) = %v, expected %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("ParseTemplateList(%q)[%d] = %s, expected %s", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, section := range []string{"Interest Rate:", "Tenure:", "Prepayment:", "Combination Strategies:", "Usage:"} {
		if !strings.Contains(help, section) {
			t.Errorf("Expected help to contain %q", section)
		}
	}
	if !strings.Contains(help, "rate_cut_50bp") {
		t.Error("Expected help to list rate_cut_50bp")
	}

	if got := GetTemplateHelp(NewTemplateRegistry()); got != "No templates registered" {
		t.Errorf("Unexpected help for empty registry: %q", got)
	}
}
