package match

import (
	"fmt"
	"math"

	"crossmatch/internal/config"
	"crossmatch/internal/metadata"
)

// passesHardFilters runs the cheap O(1) rejection checks over a candidate
// pair. Rules run in a fixed order and the first failure short-circuits; the
// returned reason is empty on success. These checks are meant to eliminate
// the vast majority of the n*m candidate pairs before similarity work runs.
func passesHardFilters(a, b *metadata.Metadata, cfg config.Config) (bool, string) {
	if !metadata.CategoriesCompatible(a.Category, b.Category) {
		return false, fmt.Sprintf("category mismatch: %s vs %s", a.Category, b.Category)
	}

	// An uncategorized market may not match a categorized one. Kept after the
	// compatibility check to preserve rule order even though the adjacency
	// table already isolates "other".
	if (a.Category == metadata.CategoryOther) != (b.Category == metadata.CategoryOther) {
		return false, "uncategorized market paired with categorized market"
	}

	if a.OutcomeType != b.OutcomeType {
		return false, fmt.Sprintf("outcome type mismatch: %s vs %s", a.OutcomeType, b.OutcomeType)
	}

	// Dates only hard-reject when both sides have one; a single-sided date is
	// scored (with a warning) downstream instead.
	if a.EventDate != nil && b.EventDate != nil {
		days := math.Abs(a.EventDate.Sub(*b.EventDate).Hours() / 24)
		if days > cfg.MaxDateDiffDays {
			return false, fmt.Sprintf("event dates %.0f days apart", days)
		}
	}

	if a.Subcategory != "" && b.Subcategory != "" && a.Subcategory != b.Subcategory {
		return false, fmt.Sprintf("subcategory mismatch: %s vs %s", a.Subcategory, b.Subcategory)
	}

	return true, ""
}
