package postedtime

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestParse_KnownUnits(t *testing.T) {
	tests := []struct {
		phrase    string
		elapsedMs int64
	}{
		{"5 minutes", 300000},
		{"2 hours", 7200000},
		{"3 days", 259200000},
		{"1 HOURS", 3600000},
		{"0 days", 0},
		{"10  Minutes", 600000},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			ts, err := Parse(tt.phrase, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.elapsedMs, fixedNow.Sub(ts).Milliseconds())
		})
	}
}

func TestParse_UnknownUnitLogsAndReturnsNow(t *testing.T) {
	hook := test.NewLocal(observability.Log)
	defer hook.Reset()

	ts, err := Parse("10 fortnights", fixedNow)
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixedNow))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Unknown time unit", entry.Message)
	assert.Equal(t, "fortnights", entry.Data["unit"])
}

func TestParse_SingularUnitIsUnknown(t *testing.T) {
	hook := test.NewLocal(observability.Log)
	defer hook.Reset()

	ts, err := Parse("1 hour", fixedNow)
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixedNow))
	assert.Len(t, hook.AllEntries(), 1)
}

func TestParse_MissingUnit(t *testing.T) {
	for _, phrase := range []string{"", "5", "Unknown", "   "} {
		t.Run(phrase, func(t *testing.T) {
			_, err := Parse(phrase, fixedNow)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, phrase, parseErr.Phrase)
			assert.Contains(t, err.Error(), "missing time unit")
		})
	}
}

func TestParse_InvalidValue(t *testing.T) {
	_, err := Parse("five minutes", fixedNow)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.NotNil(t, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "not an integer")
}

func TestElapsed(t *testing.T) {
	d, err := Elapsed("3 days")
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)
}

func TestElapsed_ClampsLargeValues(t *testing.T) {
	tests := []struct {
		phrase string
		want   time.Duration
	}{
		{"200000 days", maxElapsed},
		{"9223372036854775807 minutes", maxElapsed},
		{"99999999999999999999 hours", maxElapsed},
		{"-200000 days", -maxElapsed},
		{"100000 days", 100000 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			d, err := Elapsed(tt.phrase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestParse_LargeAgeIsOlderThanSmallAge(t *testing.T) {
	old, err := Parse("200000 days", fixedNow)
	require.NoError(t, err)
	recent, err := Parse("1 minutes", fixedNow)
	require.NoError(t, err)

	assert.True(t, old.Before(recent))
	assert.True(t, old.Before(fixedNow))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "3 days ago", Humanize("3 days", fixedNow))
	assert.Equal(t, "2 hours ago", Humanize("2 hours", fixedNow))
	assert.Equal(t, "Unknown", Humanize("Unknown", fixedNow))
}
