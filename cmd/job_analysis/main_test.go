package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleJobs = `[
  {"Title":"Engineer","Posted":"1 hours","Type":"FT","Level":"Mid","Skill":"Go","Detail":"Build services."},
  {"Title":"Analyst","Posted":"2 days","Type":"PT"},
  {"Title":"Lead","Posted":"3 days","Type":"FT","Level":"Senior","Skill":"Go"}
]`

// writeJobsFile writes content to a jobs file in a temp dir
func writeJobsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores every flag of every command to its default
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	path := writeJobsFile(t, exampleJobs)

	_, _, err := execute(t, "--log-level", "chatty", "filters", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestCLI_MissingFileFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	for _, sub := range []string{"list", "show", "filters"} {
		t.Run(sub, func(t *testing.T) {
			output, err := exec.Command(binaryPath, sub).CombinedOutput()
			assert.Error(t, err)
			assert.Contains(t, string(output), "required")
		})
	}
}
