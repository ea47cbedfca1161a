package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandsHaveNamesAndDescriptions(t *testing.T) {
	for key, cmd := range commands() {
		require.Equal(t, key, cmd.name)
		require.NotEmpty(t, cmd.description)
		require.NotNil(t, cmd.run)
	}
}

func TestPrintUsageListsEveryCommand(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w
	err = printUsage()
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	for name := range commands() {
		require.Contains(t, outStr, name)
	}
}
