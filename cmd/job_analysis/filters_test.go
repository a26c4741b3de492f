package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersCommand(t *testing.T) {
	path := writeJobsFile(t, exampleJobs)

	out, _, err := execute(t, "filters", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "FILTER OPTIONS")
	assert.Contains(t, out, "Levels (3):")
	assert.Contains(t, out, "Types (2):")
	assert.Contains(t, out, "Skills (2):")

	// First-occurrence order
	assert.Less(t, strings.Index(out, "• Mid"), strings.Index(out, "• Unknown"))
	assert.Less(t, strings.Index(out, "• Unknown"), strings.Index(out, "• Senior"))
}

func TestFiltersCommand_EmptyArray(t *testing.T) {
	path := writeJobsFile(t, `[]`)

	out, _, err := execute(t, "filters", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Levels (0):")
	assert.Contains(t, out, "(none)")
}
