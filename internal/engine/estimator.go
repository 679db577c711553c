// Package engine implements the portal's probability and expected-value
// computations. Both entry points are pure functions: they own no state and
// leave persistence and presentation to their callers.
package engine

import (
	"github.com/yourusername/pool-portal/internal/models"
)

// Estimate converts historical outcome records into a normalized probability
// mapping over the configured category set.
//
// With no history it returns the uniform prior 1/n, a neutral starting point
// for a fresh deployment. Otherwise each category maps to its relative
// frequency in the records. Every configured category appears in the result,
// absent ones with probability zero, and the values sum to 1 within floating
// tolerance.
func Estimate(records []*models.OutcomeRecord, categories []models.Category) (models.ProbabilityMapping, error) {
	if len(categories) == 0 {
		return nil, models.ErrEmptyCategorySet
	}

	probs := make(models.ProbabilityMapping, len(categories))
	if len(records) == 0 {
		uniform := 1.0 / float64(len(categories))
		for _, c := range categories {
			probs[c] = uniform
		}
		return probs, nil
	}

	counts := make(map[models.Category]int, len(categories))
	total := 0
	for _, r := range records {
		if models.ContainsCategory(categories, r.Result) {
			counts[r.Result]++
			total++
		}
	}
	if total == 0 {
		// Every record settled to a label outside the configured set, so the
		// history carries no usable signal. Fall back to the uniform prior.
		uniform := 1.0 / float64(len(categories))
		for _, c := range categories {
			probs[c] = uniform
		}
		return probs, nil
	}

	for _, c := range categories {
		probs[c] = float64(counts[c]) / float64(total)
	}
	return probs, nil
}
