package compare

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single loan scenario with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Scenario     *domain.LoanScenario     `json:"scenario"`
	Summary      *domain.LoanSummary      `json:"summary"`
	Prepayment   *domain.PrepaymentResult `json:"prepayment,omitempty"`

	// Key Metrics
	Installment        decimal.Decimal `json:"installment"`
	RevisedInstallment decimal.Decimal `json:"revisedInstallment"` // installment after any prepayment
	TotalInterest      decimal.Decimal `json:"totalInterest"`      // net of interest saved by prepaying
	EffectiveTenure    int             `json:"effectiveTenure"`    // months actually paid
	InterestSaved      decimal.Decimal `json:"interestSaved"`

	// Comparison to Base
	InstallmentDiffFromBase decimal.Decimal `json:"installmentDiffFromBase"`
	InterestDiffFromBase    decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase     decimal.Decimal `json:"interestPctFromBase"`
	TenureDiffFromBase      int             `json:"tenureDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from loan results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one scenario. prepay may be nil.
func (mc *MetricsCalculator) CalculateMetrics(scenario *domain.LoanScenario, summary *domain.LoanSummary, prepay *domain.PrepaymentResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       scenario.Name,
		Scenario:           scenario,
		Summary:            summary,
		Prepayment:         prepay,
		Installment:        summary.Installment,
		RevisedInstallment: summary.Installment,
		TotalInterest:      summary.TotalInterest,
		EffectiveTenure:    summary.TenureMonths,
		InterestSaved:      decimal.Zero,
	}

	if prepay != nil {
		result.InterestSaved = prepay.InterestSaved
		result.TotalInterest = summary.TotalInterest.Sub(prepay.InterestSaved)
		result.EffectiveTenure = summary.TenureMonths - prepay.TenureReductionPeriods
		result.RevisedInstallment = prepay.RevisedInstallment
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.InstallmentDiffFromBase = scenario.Installment.Sub(base.Installment)
	scenario.InterestDiffFromBase = scenario.TotalInterest.Sub(base.TotalInterest)

	if !base.TotalInterest.IsZero() {
		scenario.InterestPctFromBase = scenario.InterestDiffFromBase.
			Div(base.TotalInterest).
			Mul(decimal.NewFromInt(100))
	}

	scenario.TenureDiffFromBase = scenario.EffectiveTenure - base.EffectiveTenure

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Least total interest
	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(cheapest.TotalInterest) {
			cheapest = alt
		}
	}

	if cheapest != compSet.BaseResult {
		saved := compSet.BaseResult.TotalInterest.Sub(cheapest.TotalInterest)
		recommendations = append(recommendations,
			"Lowest Interest: "+cheapest.ScenarioName+" saves "+saved.StringFixed(0)+
				" in interest over the base scenario")
	}

	// Smallest installment
	lightest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Installment.LessThan(lightest.Installment) {
			lightest = alt
		}
	}

	if lightest != compSet.BaseResult {
		diff := compSet.BaseResult.Installment.Sub(lightest.Installment)
		recommendations = append(recommendations,
			"Lowest EMI: "+lightest.ScenarioName+" lowers the monthly installment by "+diff.StringFixed(0))
	}

	// Fastest payoff
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EffectiveTenure < fastest.EffectiveTenure {
			fastest = alt
		}
	}

	if fastest != compSet.BaseResult {
		months := compSet.BaseResult.EffectiveTenure - fastest.EffectiveTenure
		recommendations = append(recommendations,
			"Fastest Payoff: "+fastest.ScenarioName+" closes the loan "+
				fmt.Sprintf("%d months", months)+" earlier")
	}

	return recommendations
}
