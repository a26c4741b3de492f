package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	path := writeJobsFile(t, exampleJobs)

	out, _, err := execute(t, "show", "--file", path, "--index", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "JOB DETAIL")
	assert.Contains(t, out, "Analyst")
	assert.Contains(t, out, "Level:   Unknown")
	assert.Contains(t, out, "2 days ago")
	assert.Contains(t, out, "No details provided.")
}

func TestShowCommand_FollowsListOrder(t *testing.T) {
	path := writeJobsFile(t, exampleJobs)

	out, _, err := execute(t, "show", "-f", path, "--sort", "title", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:   Analyst")

	out, _, err = execute(t, "show", "-f", path, "--skill", "Go", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:   Lead")
}

func TestShowCommand_IndexErrors(t *testing.T) {
	path := writeJobsFile(t, exampleJobs)

	_, _, err := execute(t, "show", "--file", path, "--index", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, _, err = execute(t, "show", "--file", path, "--index", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")

	_, _, err = execute(t, "show", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
