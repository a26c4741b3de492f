// Package board owns the application state of one job-analysis session and
// turns UI events (upload, filter, sort, select) into new working sets.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jonathan/job-analysis/internal/filtering"
	"github.com/jonathan/job-analysis/internal/ingestion"
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/jonathan/job-analysis/internal/postedtime"
	"github.com/jonathan/job-analysis/internal/rendering"
	"github.com/jonathan/job-analysis/internal/sorting"
	"github.com/jonathan/job-analysis/internal/types"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSuperseded is returned by an upload that finished after a newer one started
	ErrSuperseded = errors.New("upload superseded by a newer upload")
	// ErrIndexOutOfRange is returned when selecting a row that does not exist
	ErrIndexOutOfRange = errors.New("job index out of range")
)

// DefaultMaxUploadBytes caps uploads when no limit is configured
const DefaultMaxUploadBytes = 10 << 20

// State is the complete session state.
// Working is always All filtered by Selection, possibly reordered by a sort.
type State struct {
	All       []types.Job         `json:"all"`
	Working   []types.Job         `json:"working"`
	Selection filtering.Selection `json:"selection"`
	Sort      sorting.State       `json:"sort"`
	Source    *ingestion.Metadata `json:"source,omitempty"`
	UploadID  uuid.UUID           `json:"upload_id"`
}

// UploadResult describes a successful upload
type UploadResult struct {
	ID       uuid.UUID           `json:"id"`
	Metadata *ingestion.Metadata `json:"metadata"`
	Options  filtering.Options   `json:"options"`
	View     rendering.View      `json:"view"`
}

// SortResult describes the working set after a sort
type SortResult struct {
	Field     sorting.Field     `json:"field"`
	Direction sorting.Direction `json:"direction"`
	View      rendering.View    `json:"view"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// Board serializes every event on its state, so handlers behave as if they
// ran on a single event loop. Only reading an upload happens outside the lock.
type Board struct {
	mu             sync.Mutex
	state          State
	now            func() time.Time
	maxUploadBytes int64

	generation    uint64
	cancelPending context.CancelFunc
}

// Option configures a Board
type Option func(*Board)

// WithClock sets the time source used for posting ages
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithMaxUploadBytes caps the size of an uploaded document
func WithMaxUploadBytes(n int64) Option {
	return func(b *Board) {
		if n > 0 {
			b.maxUploadBytes = n
		}
	}
}

// New creates an empty Board
func New(opts ...Option) *Board {
	b := &Board{
		state: State{
			All:     []types.Job{},
			Working: []types.Job{},
			Sort:    sorting.NewState(),
		},
		now:            time.Now,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Upload reads a jobs document from r and, if it parses, replaces the full
// set. Starting an upload cancels any upload still being read; the later
// upload always wins and the earlier one returns ErrSuperseded. On any error
// the previous state is left untouched.
func (b *Board) Upload(ctx context.Context, r io.Reader, source string) (UploadResult, error) {
	b.mu.Lock()
	if b.cancelPending != nil {
		b.cancelPending()
	}
	b.generation++
	generation := b.generation
	readCtx, cancel := context.WithCancel(ctx)
	b.cancelPending = cancel
	b.mu.Unlock()
	defer cancel()

	jobs, raw, err := ingestion.ReadJobs(readCtx, r, b.maxUploadBytes)

	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		observability.Log.WithField("source", source).Info("Discarding superseded upload")
		return UploadResult{}, ErrSuperseded
	}
	b.cancelPending = nil

	if err != nil {
		observability.Log.WithFields(logrus.Fields{
			"source": source,
			"error":  err,
		}).Warn("Upload rejected")
		return UploadResult{}, err
	}

	meta := ingestion.NewMetadata(raw, source, len(jobs), b.now())
	b.load(jobs, meta)

	observability.Log.WithFields(logrus.Fields{
		"upload_id": b.state.UploadID,
		"source":    source,
		"count":     len(jobs),
	}).Info("Jobs loaded")

	return UploadResult{
		ID:       b.state.UploadID,
		Metadata: meta,
		Options:  filtering.PopulateFilters(b.state.All),
		View:     rendering.Project(b.state.Working),
	}, nil
}

// Load replaces the full set directly, e.g. with a file read at startup
func (b *Board) Load(jobs []types.Job, meta *ingestion.Metadata) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.load(jobs, meta)
	return b.state.UploadID
}

// load replaces the full set and resets the working set and selection.
// Sort toggles survive uploads. Caller holds mu.
func (b *Board) load(jobs []types.Job, meta *ingestion.Metadata) {
	all := make([]types.Job, len(jobs))
	copy(all, jobs)

	b.state.All = all
	b.state.Working = filtering.ApplyFilters(all, filtering.Selection{})
	b.state.Selection = filtering.Selection{}
	b.state.Source = meta
	b.state.UploadID = uuid.New()
}

// ApplyFilters recomputes the working set from the full set
func (b *Board) ApplyFilters(sel filtering.Selection) rendering.View {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.Selection = sel
	b.state.Working = filtering.ApplyFilters(b.state.All, sel)

	observability.Log.WithFields(logrus.Fields{
		"level":   sel.Level,
		"type":    sel.Type,
		"skill":   sel.Skill,
		"matches": len(b.state.Working),
	}).Debug("Filters applied")

	return rendering.Project(b.state.Working)
}

// CycleSort flips the stored direction for field and sorts the working set
func (b *Board) CycleSort(field sorting.Field) (SortResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir, err := b.state.Sort.Cycle(field)
	if err != nil {
		return SortResult{}, err
	}
	return b.sort(field, dir)
}

// SortJobs sorts the working set in an explicit direction without touching the toggles
func (b *Board) SortJobs(field sorting.Field, dir sorting.Direction) (SortResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sort(field, dir)
}

// sort orders the working set. Unparsable posting ages are reported as
// warnings, not errors. Caller holds mu.
func (b *Board) sort(field sorting.Field, dir sorting.Direction) (SortResult, error) {
	result := SortResult{Field: field, Direction: dir}

	if err := sorting.SortJobs(b.state.Working, field, dir, b.now()); err != nil {
		if errors.Is(err, sorting.ErrUnknownField) || errors.Is(err, sorting.ErrUnknownDirection) {
			return SortResult{}, err
		}
		result.Warnings = warnings(err)
		observability.Log.WithFields(logrus.Fields{
			"field":    field,
			"warnings": len(result.Warnings),
		}).Warn("Some posting ages could not be parsed")
	}

	result.View = rendering.Project(b.state.Working)
	return result, nil
}

// View projects the current working set
func (b *Board) View() rendering.View {
	b.mu.Lock()
	defer b.mu.Unlock()

	return rendering.Project(b.state.Working)
}

// Options returns the filter options, always derived from the full set
func (b *Board) Options() filtering.Options {
	b.mu.Lock()
	defer b.mu.Unlock()

	return filtering.PopulateFilters(b.state.All)
}

// Detail returns the full description of the row at index in the working set
func (b *Board) Detail(index int) (*rendering.Detail, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.state.Working) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(b.state.Working))
	}

	job := b.state.Working[index]
	return &rendering.Detail{
		Index: index,
		Job:   job,
		Text:  job.Details(),
		Age:   postedtime.Humanize(job.Posted, b.now()),
	}, nil
}

// Snapshot returns a deep copy of the state
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state
	s.All = make([]types.Job, len(b.state.All))
	copy(s.All, b.state.All)
	s.Working = make([]types.Job, len(b.state.Working))
	copy(s.Working, b.state.Working)
	return s
}

func warnings(err error) []string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
