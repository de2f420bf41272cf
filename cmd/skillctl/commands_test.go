package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"migrate", "version"},
		{"seed"},
		{"gpa", "recompute"},
	} {
		cmd, rest, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Empty(t, rest)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestGPARecompute_RequiresLearnerFlag(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"gpa", "recompute"})
	require.NoError(t, err)

	flag := cmd.Flags().Lookup("learner")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestMigrateRejectsArgs(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}
