package yalc_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openledger/yalc/cmd/yalc"
	"github.com/openledger/yalc/internal/core"
	"github.com/openledger/yalc/internal/models"
	"github.com/openledger/yalc/internal/testutil"
)

func TestChainCmd(t *testing.T) {
	ledger := testutil.NewMockLedger()
	defer ledger.Close()

	out, err := testutil.Execute(t, yalc.RootCmd, "chain", ledger.URL())
	require.NoError(t, err)

	var chain models.Chain
	require.NoError(t, json.Unmarshal([]byte(out), &chain))
	require.Len(t, chain, 1)
	assert.Equal(t, uint64(1), chain[0].Index)
	assert.Equal(t, "1", chain[0].PreviousHash)
}

func TestSubmitCmd(t *testing.T) {
	ledger := testutil.NewMockLedger()
	defer ledger.Close()

	t.Run("MissingFields", func(t *testing.T) {
		out, err := testutil.Execute(t, yalc.RootCmd, "submit", ledger.URL())
		require.ErrorIs(t, err, core.ErrMissingFields)
		assert.Contains(t, out, core.StatusFillFields)
		assert.Empty(t, ledger.Pending(), "validation failures must not reach the service")
	})

	t.Run("Success", func(t *testing.T) {
		out, err := testutil.Execute(t, yalc.RootCmd, "submit", ledger.URL(),
			"-s", "alice", "-r", "bob", "-a", "10")
		require.NoError(t, err)
		assert.Contains(t, out, "Transaction will be added to Block 2")

		pending := ledger.Pending()
		require.Len(t, pending, 1)
		assert.Equal(t, models.Transaction{Sender: "alice", Recipient: "bob", Amount: 10}, pending[0])
	})
}

func TestMineCmd(t *testing.T) {
	ledger := testutil.NewMockLedger()
	defer ledger.Close()

	out, err := testutil.Execute(t, yalc.RootCmd, "mine", ledger.URL())
	require.NoError(t, err)
	assert.Contains(t, out, "Mined block 2")
	assert.Len(t, ledger.Chain(), 2)
}

func TestNodesCmd(t *testing.T) {
	ledger := testutil.NewMockLedger()
	defer ledger.Close()

	out, err := testutil.Execute(t, yalc.RootCmd, "nodes", "register", ledger.URL(), "http://127.0.0.1:5001")
	require.NoError(t, err)
	assert.Contains(t, out, "New nodes have been added")

	out, err = testutil.Execute(t, yalc.RootCmd, "nodes", "resolve", ledger.URL())
	require.NoError(t, err)
	assert.Contains(t, out, "Our chain is authoritative")
}

func TestChainCmdDump(t *testing.T) {
	ledger := testutil.NewMockLedger()
	defer ledger.Close()

	outDir := t.TempDir()
	_, err := testutil.Execute(t, yalc.RootCmd, "chain", ledger.URL(), "-o", outDir, "-f", "tsv")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "blocks.tsv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "1\t100\t1"), "unexpected block row: %s", lines[0])
}
