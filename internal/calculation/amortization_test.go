package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalPtr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

func loan(principal, rate string, months int) domain.LoanInputs {
	return domain.LoanInputs{Principal: d(principal), AnnualRatePercent: d(rate), TenureMonths: months}
}

func TestComputeInstallment_ReferenceLoan(t *testing.T) {
	emi, err := ComputeInstallment(loan("500000", "12", 36))
	require.NoError(t, err)

	assert.InDelta(t, 16607.15, emi.InexactFloat64(), 0.01)
	assert.Equal(t, "16607", emi.Round(0).String(), "EMI rounds to the whole-unit figure shown on loan pages")
}

func TestComputeInstallment_ZeroRate(t *testing.T) {
	emi, err := ComputeInstallment(loan("120000", "0", 12))
	require.NoError(t, err)
	assert.True(t, emi.Equal(d("10000")), "zero rate is a straight split, got %s", emi)
}

func TestComputeInstallment_InvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		in         domain.LoanInputs
		degenerate bool
	}{
		{"zero principal", loan("0", "10", 12), true},
		{"negative principal", loan("-5", "10", 12), true},
		{"zero tenure", loan("100000", "10", 0), true},
		{"negative rate", loan("100000", "-1", 12), false},
		{"tenure too long", loan("100000", "10", MaxTenureMonths+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emi, err := ComputeInstallment(tt.in)
			require.Error(t, err)
			assert.True(t, emi.IsZero())
			if tt.degenerate {
				var de *domain.DegenerateInputError
				assert.True(t, errors.As(err, &de), "want DegenerateInputError, got %T", err)
			} else {
				var oe *domain.OutOfRangeError
				assert.True(t, errors.As(err, &oe), "want OutOfRangeError, got %T", err)
			}
		})
	}
}

func TestGenerateSchedule_EndsAtExactlyZero(t *testing.T) {
	inputs := []domain.LoanInputs{
		loan("500000", "12", 36),
		loan("2500000", "8.5", 240),
		loan("99999.99", "17.25", 7),
		loan("100000", "0", 13),
		loan("1", "36", 1),
		loan("7500000", "9.15", 360),
	}
	for _, in := range inputs {
		t.Run(in.Principal.String()+"@"+in.AnnualRatePercent.String(), func(t *testing.T) {
			schedule, err := GenerateSchedule(in)
			require.NoError(t, err)
			require.Len(t, schedule, in.TenureMonths)

			last := schedule[len(schedule)-1]
			assert.True(t, last.ClosingBalance.IsZero(), "closing balance %s", last.ClosingBalance)

			paid := decimal.Zero
			for i, e := range schedule {
				assert.Equal(t, i+1, e.Period)
				assert.True(t, e.OpeningBalance.Sub(e.PrincipalPortion).Equal(e.ClosingBalance))
				if i > 0 {
					assert.True(t, e.OpeningBalance.Equal(schedule[i-1].ClosingBalance))
				}
				paid = paid.Add(e.PrincipalPortion)
			}
			assert.True(t, paid.Equal(in.Principal), "principal repaid %s", paid)
		})
	}
}

func TestInstallmentCoversPrincipal(t *testing.T) {
	for _, principal := range []string{"100", "350000", "1000000"} {
		for _, rate := range []string{"0", "0.0000001", "0.00001", "0.5", "7.25", "12", "24", "48"} {
			for _, months := range []int{1, 3, 7, 12, 60, 360} {
				in := loan(principal, rate, months)
				emi, err := ComputeInstallment(in)
				require.NoError(t, err)
				total := emi.Mul(decimal.NewFromInt(int64(months)))
				assert.True(t, total.GreaterThanOrEqual(in.Principal),
					"%s at %s%% over %d: %s < %s", principal, rate, months, total, in.Principal)
			}
		}
	}
}

func TestComputeInstallment_ZeroRateRoundsUp(t *testing.T) {
	emi, err := ComputeInstallment(loan("100", "0", 3))
	require.NoError(t, err)
	assert.True(t, emi.Equal(d("33.3333333334")), "got %s", emi)

	schedule, err := GenerateSchedule(loan("100", "0", 3))
	require.NoError(t, err)
	last := schedule[len(schedule)-1]
	assert.True(t, last.ClosingBalance.IsZero())
	assert.True(t, last.PrincipalPortion.Equal(d("33.3333333332")), "got %s", last.PrincipalPortion)
}

func TestSummarizeLoan(t *testing.T) {
	summary, err := SummarizeLoan(loan("500000", "12", 36))
	require.NoError(t, err)

	assert.Equal(t, 36, summary.TenureMonths)
	assert.InDelta(t, 97857.58, summary.TotalInterest.InexactFloat64(), 0.01)
	// loan pages quote interest off the whole-unit EMI
	wholeUnit := summary.Installment.Round(0).Mul(decimal.NewFromInt(36)).Sub(d("500000"))
	assert.Equal(t, "97852", wholeUnit.String())
	assert.True(t, summary.TotalPayment.Equal(summary.TotalInterest.Add(d("500000"))))
}

func TestSummarizeLoan_Invalid(t *testing.T) {
	_, err := SummarizeLoan(loan("0", "12", 36))
	assert.Error(t, err)
}

func TestPrincipalForInstallment(t *testing.T) {
	emi, err := ComputeInstallment(loan("500000", "12", 36))
	require.NoError(t, err)

	principal, err := PrincipalForInstallment(emi, d("12"), 36)
	require.NoError(t, err)
	assert.InDelta(t, 500000, principal.InexactFloat64(), 0.0001)

	principal, err = PrincipalForInstallment(d("1000"), d("0"), 12)
	require.NoError(t, err)
	assert.True(t, principal.Equal(d("12000")))

	_, err = PrincipalForInstallment(d("0"), d("12"), 36)
	var degenerate *domain.DegenerateInputError
	assert.True(t, errors.As(err, &degenerate))

	_, err = PrincipalForInstallment(d("1000"), d("12"), 1201)
	var outOfRange *domain.OutOfRangeError
	assert.True(t, errors.As(err, &outOfRange))
}
