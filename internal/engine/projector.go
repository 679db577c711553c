package engine

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/pool-portal/internal/models"
)

// Project simulates a pari-mutuel payout for every category the bettor might
// choose. The stake joins both the chosen pool and the total pool before the
// payout ratio is taken, and expected value nets the stake back out, so a
// fair pool with accurate probabilities projects to roughly zero edge.
//
// Each entry is a "projected if this category wins" figure, computed as if
// the bettor had staked on that category exclusively. It is not a live
// multi-outcome wager; the caller decides which entries to display.
//
// Zero pools and a zero stake are ordinary inputs, not errors: the ratio of
// an empty winning pool is defined as zero, and a zero stake zeroes every
// payout and expected value. Negative amounts are rejected outright.
func Project(bet models.BetRequest, probs models.ProbabilityMapping, categories []models.Category) (models.ExpectedValueResult, error) {
	if len(categories) == 0 {
		return nil, models.ErrEmptyCategorySet
	}
	if err := bet.Validate(categories); err != nil {
		return nil, err
	}

	totalAfterBet := bet.Pool.Total(categories).Add(bet.Amount)

	result := make(models.ExpectedValueResult, len(categories))
	for _, c := range categories {
		winPoolAfterBet := bet.Pool[c].Add(bet.Amount)
		payout := safeRatio(totalAfterBet, winPoolAfterBet).Mul(bet.Amount)
		ev := decimal.NewFromFloat(probs[c]).Mul(payout).Sub(bet.Amount)
		result[c] = models.CategoryProjection{
			ExpectedValue: ev,
			PayoutIfWin:   payout,
		}
	}
	return result, nil
}

// safeRatio is the single division-by-zero guard for pool math: an empty
// denominator yields zero instead of an error.
func safeRatio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
