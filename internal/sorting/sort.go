// Package sorting orders job postings by title or posting age and keeps the
// per-field direction toggles.
package sorting

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jonathan/job-analysis/internal/postedtime"
	"github.com/jonathan/job-analysis/internal/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownField is returned for a sort field other than title or posted
var ErrUnknownField = errors.New("unknown sort field")

// ErrUnknownDirection is returned for a direction other than asc or desc
var ErrUnknownDirection = errors.New("unknown sort direction")

// Field names a sortable job attribute
type Field string

const (
	FieldTitle  Field = "title"
	FieldPosted Field = "posted"
)

// ParseField accepts "title" or "posted" (also "postedTime" and "time").
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "posted", "postedtime", "time":
		return FieldPosted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// Direction is a sort order
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc", case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// State holds one independent direction toggle per field.
// It does not remember which field was used last.
type State struct {
	Title  Direction `json:"title"`
	Posted Direction `json:"posted"`
}

// NewState returns both toggles set to ascending.
func NewState() State {
	return State{Title: Asc, Posted: Asc}
}

// Direction returns the stored direction for field
func (s State) Direction(field Field) (Direction, error) {
	switch field {
	case FieldTitle:
		return s.Title, nil
	case FieldPosted:
		return s.Posted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Cycle flips the stored direction for field and returns the new value.
// Since both toggles start ascending, the first activation sorts descending.
func (s *State) Cycle(field Field) (Direction, error) {
	switch field {
	case FieldTitle:
		s.Title = s.Title.Flip()
		return s.Title, nil
	case FieldPosted:
		s.Posted = s.Posted.Flip()
		return s.Posted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// SortJobs orders jobs in place.
//
// Titles use English collation. Posting ages are compared as timestamps
// relative to now, so ascending puts the oldest posting first. Records whose
// age cannot be parsed sort as posted at now; their parse errors are returned
// together once the sort is done. Ties keep their input order.
func SortJobs(jobs []types.Job, field Field, dir Direction, now time.Time) error {
	if dir != Asc && dir != Desc {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, dir)
	}

	switch field {
	case FieldTitle:
		sortByTitle(jobs, dir)
		return nil
	case FieldPosted:
		return sortByPosted(jobs, dir, now)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func sortByTitle(jobs []types.Job, dir Direction) {
	c := collate.New(language.English)
	sort.SliceStable(jobs, func(i, j int) bool {
		if dir == Desc {
			return c.CompareString(jobs[j].Title, jobs[i].Title) < 0
		}
		return c.CompareString(jobs[i].Title, jobs[j].Title) < 0
	})
}

type timedJob struct {
	job types.Job
	at  time.Time
}

func sortByPosted(jobs []types.Job, dir Direction, now time.Time) error {
	var result *multierror.Error

	keyed := make([]timedJob, len(jobs))
	for i, job := range jobs {
		at, err := postedtime.Parse(job.Posted, now)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("record %d (%s): %w", i, job.Title, err))
			at = now
		}
		keyed[i] = timedJob{job: job, at: at}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if dir == Desc {
			return keyed[j].at.Before(keyed[i].at)
		}
		return keyed[i].at.Before(keyed[j].at)
	})

	for i := range keyed {
		jobs[i] = keyed[i].job
	}

	return result.ErrorOrNil()
}
