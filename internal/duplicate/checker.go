// Package duplicate detects whether a food name was already logged today.
package duplicate

import (
	"strings"

	"github.com/sakif/calorie-calculator/internal/model"
)

// Result is either Unique or a Duplicate holding the first matching entry.
type Result struct {
	existing *model.FoodEntry
}

// Unique is the result when no entry matches.
var Unique = Result{}

// Duplicate wraps the entry that matched.
func Duplicate(existing model.FoodEntry) Result {
	return Result{existing: &existing}
}

// IsDuplicate reports whether a match was found.
func (r Result) IsDuplicate() bool {
	return r.existing != nil
}

// Existing returns the matched entry and true, or the zero entry and false
// for a unique result.
func (r Result) Existing() (model.FoodEntry, bool) {
	if r.existing == nil {
		return model.FoodEntry{}, false
	}
	return *r.existing, true
}

// Checker compares names case- and whitespace-insensitively.
type Checker struct{}

// NewChecker returns a Checker.
func NewChecker() Checker {
	return Checker{}
}

// CheckForDuplicate returns the first entry in candidates whose normalized
// name equals the normalized name. A name that normalizes to "" is always
// unique.
func (Checker) CheckForDuplicate(name string, candidates []model.FoodEntry) Result {
	want := normalize(name)
	if want == "" {
		return Unique
	}
	for _, c := range candidates {
		if normalize(c.Name) == want {
			return Duplicate(c)
		}
	}
	return Unique
}

func normalize(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
