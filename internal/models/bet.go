package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PoolMapping holds the accumulated stake per category before a hypothetical
// bet is placed. Amounts are currency values and never negative.
type PoolMapping map[Category]decimal.Decimal

// Total sums every category pool. Categories missing from the mapping count
// as zero.
func (p PoolMapping) Total(categories []Category) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(p[c])
	}
	return total
}

// BetRequest is the transient input to a payout projection: the hypothetical
// stake and the current pool state. It is never persisted.
type BetRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Pool   PoolMapping     `json:"pool"`
}

// Validate rejects negative amounts and pools, and pool entries outside the
// configured category set. Degenerate-but-valid inputs (zero bet, empty
// pools) pass; they have defined projection behavior.
func (b BetRequest) Validate(categories []Category) error {
	if b.Amount.IsNegative() {
		return fmt.Errorf("bet amount %s: %w", b.Amount, ErrNegativeAmount)
	}
	for c, v := range b.Pool {
		if !ContainsCategory(categories, c) {
			return fmt.Errorf("pool category %q: %w", c, ErrUnknownCategory)
		}
		if v.IsNegative() {
			return fmt.Errorf("pool %q holds %s: %w", c, v, ErrNegativeAmount)
		}
	}
	return nil
}

// ProbabilityMapping maps every configured category to its empirical
// probability. Values are non-negative and sum to 1 within floating
// tolerance whenever the mapping is well-formed.
type ProbabilityMapping map[Category]float64

// Sum adds up all probability mass, for normalization checks.
func (m ProbabilityMapping) Sum() float64 {
	var sum float64
	for _, p := range m {
		sum += p
	}
	return sum
}

// Best returns the most likely category, breaking ties by display order.
func (m ProbabilityMapping) Best(categories []Category) (Category, float64) {
	var (
		best Category
		max  = -1.0
	)
	for _, c := range categories {
		if p := m[c]; p > max {
			best, max = c, p
		}
	}
	return best, max
}

// CategoryProjection is the per-category outcome of a payout projection,
// computed as if the bettor had chosen that category exclusively.
type CategoryProjection struct {
	ExpectedValue decimal.Decimal `json:"expected_value"`
	PayoutIfWin   decimal.Decimal `json:"payout_if_win"`
}

// ExpectedValueResult maps every configured category to its projection.
type ExpectedValueResult map[Category]CategoryProjection
