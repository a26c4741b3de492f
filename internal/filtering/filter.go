// Package filtering derives filter choices from loaded job postings and
// narrows them by exact-match selections.
package filtering

import (
	"github.com/jonathan/job-analysis/internal/types"
)

// Selection holds the three optional equality constraints.
// An empty value means the constraint is unset and matches everything.
type Selection struct {
	Level string `json:"level"`
	Type  string `json:"type"`
	Skill string `json:"skill"`
}

// IsZero reports whether no constraint is set
func (s Selection) IsZero() bool {
	return s.Level == "" && s.Type == "" && s.Skill == ""
}

// Matches reports whether job satisfies every set constraint
func (s Selection) Matches(job types.Job) bool {
	return (s.Level == "" || job.Level == s.Level) &&
		(s.Type == "" || job.Type == s.Type) &&
		(s.Skill == "" || job.Skill == s.Skill)
}

// Options lists the distinct values available for each filter, in the order
// they first occur in the full set.
type Options struct {
	Levels []string `json:"levels"`
	Types  []string `json:"types"`
	Skills []string `json:"skills"`
}

// PopulateFilters computes the filter options from the full loaded set.
// Options must never be derived from a filtered subset, otherwise picking one
// filter would shrink the choices of the others.
func PopulateFilters(all []types.Job) Options {
	return Options{
		Levels: distinct(all, func(j types.Job) string { return j.Level }),
		Types:  distinct(all, func(j types.Job) string { return j.Type }),
		Skills: distinct(all, func(j types.Job) string { return j.Skill }),
	}
}

// ApplyFilters returns the records of all that match sel, in their original
// order. The input is not modified and the result never aliases it.
func ApplyFilters(all []types.Job, sel Selection) []types.Job {
	result := make([]types.Job, 0, len(all))
	for _, job := range all {
		if sel.Matches(job) {
			result = append(result, job)
		}
	}
	return result
}

func distinct(all []types.Job, value func(types.Job) string) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0)
	for _, job := range all {
		v := value(job)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
