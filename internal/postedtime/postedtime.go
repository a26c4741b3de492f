// Package postedtime converts relative posting-age phrases such as "3 days"
// into absolute timestamps.
package postedtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/sirupsen/logrus"
)

// units maps the recognized unit words to their length
var units = map[string]time.Duration{
	"minutes": time.Minute,
	"hours":   time.Hour,
	"days":    24 * time.Hour,
}

// maxElapsed is the largest representable age; longer ages are clamped to it
const maxElapsed = time.Duration(math.MaxInt64)

// ParseError represents a phrase that does not have the "<integer> <unit>" shape
type ParseError struct {
	Phrase  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid posted time %q: %s: %v", e.Phrase, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid posted time %q: %s", e.Phrase, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Elapsed returns the duration described by phrase.
// An unrecognized unit is logged and counts as zero elapsed time. Ages past
// the range of time.Duration (about 292 years) are clamped.
func Elapsed(phrase string) (time.Duration, error) {
	fields := strings.Fields(phrase)
	if len(fields) < 2 {
		return 0, &ParseError{Phrase: phrase, Message: "missing time unit"}
	}

	// Out-of-range integers come back clamped to the int64 bounds
	value, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Phrase: phrase, Message: "value is not an integer", Cause: err}
	}

	unit := strings.ToLower(fields[1])
	length, ok := units[unit]
	if !ok {
		observability.Log.WithFields(logrus.Fields{
			"unit":   unit,
			"phrase": phrase,
		}).Warn("Unknown time unit")
		return 0, nil
	}

	return scale(value, length), nil
}

// scale multiplies value by length, clamping to ±maxElapsed instead of wrapping
func scale(value int64, length time.Duration) time.Duration {
	limit := int64(maxElapsed / length)
	switch {
	case value > limit:
		return maxElapsed
	case value < -limit:
		return -maxElapsed
	default:
		return time.Duration(value) * length
	}
}

// Parse returns now minus the elapsed time described by phrase.
func Parse(phrase string, now time.Time) (time.Time, error) {
	elapsed, err := Elapsed(phrase)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-elapsed), nil
}

// Humanize renders phrase as an age relative to now ("3 days ago").
// Phrases that cannot be parsed are returned unchanged.
func Humanize(phrase string, now time.Time) string {
	ts, err := Parse(phrase, now)
	if err != nil {
		return phrase
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}
