package yalc_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/openledger/yalc/cmd/yalc"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	// Show help
	output, err := executeCommand(yalc.RootCmd)
	assert.NoError(t, err)
	assert.Contains(t, output, "yalc talks to a ledger service over HTTP")

	// Test invalid logLevel
	_, err = executeCommand(yalc.RootCmd, "version", "--logLevel", "invalid")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid log level: invalid. Valid log levels are: debug|error|info|warn")

	// Restore a valid level for any test that runs afterwards
	_, err = executeCommand(yalc.RootCmd, "version", "--logLevel", "info")
	assert.NoError(t, err)
}
