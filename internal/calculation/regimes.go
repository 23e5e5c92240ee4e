package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// IDs of the two regimes shipped in the embedded defaults
const (
	RegimeNew = "new"
	RegimeOld = "old"
)

// RegimeBook indexes tax regimes by ID and financial year
type RegimeBook struct {
	regimes map[string]domain.TaxRegime
}

// NewRegimeBook validates and indexes regimes. A later regime with the same
// key replaces an earlier one, so user files can override embedded defaults.
func NewRegimeBook(regimes ...domain.TaxRegime) (*RegimeBook, error) {
	book := &RegimeBook{regimes: make(map[string]domain.TaxRegime)}
	for _, r := range regimes {
		if err := book.Add(r); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// Add validates every slab table of r before storing it
func (b *RegimeBook) Add(r domain.TaxRegime) error {
	if r.ID == "" {
		return fmt.Errorf("regime has no id")
	}
	if err := ValidateSlabs(r.Key(), r.Slabs); err != nil {
		return err
	}
	for band, slabs := range r.AgeBandSlabs {
		if !band.Valid() {
			return &domain.RegimeMismatchError{Regime: r.Key(), Message: fmt.Sprintf("unknown age band %q", band)}
		}
		if err := ValidateSlabs(r.Key()+"/"+string(band), slabs); err != nil {
			return err
		}
	}
	b.regimes[r.Key()] = r
	return nil
}

// Lookup finds a regime by ID. An empty financialYear selects the latest year
// on file; ref may also be a full key such as "new@2024-25".
func (b *RegimeBook) Lookup(ref, financialYear string) (domain.TaxRegime, error) {
	if r, ok := b.regimes[ref]; ok && (financialYear == "" || r.FinancialYear == financialYear) {
		return r, nil
	}
	if financialYear != "" {
		if r, ok := b.regimes[ref+"@"+financialYear]; ok {
			return r, nil
		}
		return domain.TaxRegime{}, fmt.Errorf("no regime %q for financial year %s", ref, financialYear)
	}

	var latest *domain.TaxRegime
	for _, r := range b.regimes {
		if r.ID != ref {
			continue
		}
		if latest == nil || r.FinancialYear > latest.FinancialYear {
			r := r
			latest = &r
		}
	}
	if latest == nil {
		return domain.TaxRegime{}, fmt.Errorf("unknown regime %q", ref)
	}
	return *latest, nil
}

// All returns the regimes ordered by financial year then ID
func (b *RegimeBook) All() []domain.TaxRegime {
	out := make([]domain.TaxRegime, 0, len(b.regimes))
	for _, r := range b.regimes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinancialYear != out[j].FinancialYear {
			return out[i].FinancialYear < out[j].FinancialYear
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len reports how many regimes are indexed
func (b *RegimeBook) Len() int {
	return len(b.regimes)
}
