package models

// Category is one of the closed, ordered set of outcome labels a draw can
// settle to. The set is fixed at deployment time via configuration; order
// matters only for stable display.
type Category string

// Default outcome labels carried over from the original portal.
const (
	CategoryWin      Category = "win"
	CategoryLoss     Category = "loss"
	CategoryGoalLoss Category = "goal_loss"
)

// DefaultCategories returns the built-in category set in display order.
func DefaultCategories() []Category {
	return []Category{CategoryWin, CategoryLoss, CategoryGoalLoss}
}

// ContainsCategory reports whether c belongs to the configured set.
func ContainsCategory(set []Category, c Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// CategoryStrings converts a category set to plain strings for logging and
// validation messages.
func CategoryStrings(set []Category) []string {
	out := make([]string, len(set))
	for i, c := range set {
		out[i] = string(c)
	}
	return out
}
