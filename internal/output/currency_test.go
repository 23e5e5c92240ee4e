package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyFormatter_Format(t *testing.T) {
	cur := DefaultCurrency()

	got := cur.Format(d("16607.15"))
	assert.True(t, strings.HasPrefix(got, "₹"), got)
	assert.Contains(t, got, "607")
	assert.NotContains(t, got, ".", "display rounds to whole units")

	assert.True(t, strings.HasPrefix(cur.Format(d("-2500.4")), "-₹"))
	assert.Equal(t, "₹0", cur.Format(d("0.2")))
}

func TestCurrencyFormatter_GroupsDigits(t *testing.T) {
	got := NewCurrencyFormatter("en-US", "$").Format(d("1234567"))
	assert.Equal(t, "$1,234,567", got)
}

func TestCurrencyFormatter_BadLocaleFallsBack(t *testing.T) {
	cur := NewCurrencyFormatter("not a locale!!", "₹")
	assert.NotEmpty(t, cur.Format(d("100")))
}

func TestCurrencyFormatter_FormatPrecise(t *testing.T) {
	got := NewCurrencyFormatter("en-US", "$").FormatPrecise(d("1234.567"))
	assert.Equal(t, "$1,234.57", got)
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "20.11%", FormatPercentage(d("20.1124")))
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"₹1,00,000":  "100000",
		" 2_500.50 ": "2500.5",
		"$1,234":     "1234",
	}
	for in, want := range tests {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(d(want)), "%s -> %s", in, got)
	}

	_, err := ParseAmount("ten")
	assert.Error(t, err)
}
