package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/transform"
)

// CompareEngine orchestrates loan scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // template names, one alternative each
	Transforms []string // ad-hoc transform specs ("name:k=v"), one alternative each
}

// Compare evaluates base and one alternative per template or transform spec
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.LoanScenario,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	if base.Name == "" {
		base = base.DeepCopy()
		base.Name = "base"
	}

	baseResult, err := ce.evaluate(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = base.Name + "_" + templateName

		altResult, err := ce.evaluate(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, []transform.LoanTransform{t})
		if err != nil {
			return nil, err
		}
		modified.Name = base.Name + "_" + t.Name()

		altResult, err := ce.evaluate(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", spec, err)
		}
		altResult.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base *domain.LoanScenario,
	alternatives []domain.LoanScenario,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	baseResult, err := ce.evaluate(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	results := []ComparisonResult{}
	for i := range alternatives {
		alt := alternatives[i].DeepCopy()
		altResult, err := ce.evaluate(ctx, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// evaluate runs the loan, and its prepayment when present, through the strict engine
func (ce *CompareEngine) evaluate(ctx context.Context, sc *domain.LoanScenario) (ComparisonResult, error) {
	loan := sc.Loan
	out, err := ce.CalcEngine.Run(ctx, domain.CalculationRequest{
		Name: sc.Name,
		Kind: domain.KindEMI,
		Loan: &loan,
	})
	if err != nil {
		return ComparisonResult{}, err
	}

	var prepay *domain.PrepaymentResult
	if sc.Prepayment != nil {
		p := *sc.Prepayment
		pout, err := ce.CalcEngine.Run(ctx, domain.CalculationRequest{
			Name:       sc.Name,
			Kind:       domain.KindPrepayment,
			Loan:       &loan,
			Prepayment: &p,
		})
		if err != nil {
			return ComparisonResult{}, err
		}
		prepay = pout.Prepayment
	}

	return ce.MetricsCalculator.CalculateMetrics(sc, out.Loan, prepay), nil
}
