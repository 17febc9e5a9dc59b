package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openledger/yalc/internal/models"
	"github.com/openledger/yalc/internal/store"
)

func TestReplaceChain(t *testing.T) {
	s := store.New()

	chain := models.Chain{{Index: 1, Proof: 100, PreviousHash: "1"}}
	gen := s.NextSyncGeneration()
	require.True(t, s.ReplaceChain(chain, gen))
	assert.Equal(t, chain, s.Get().Chain)

	// A newer chain applied first wins over a slower, older response.
	older := s.NextSyncGeneration()
	newer := s.NextSyncGeneration()
	newChain := models.Chain{{Index: 1}, {Index: 2}}
	require.True(t, s.ReplaceChain(newChain, newer))
	assert.False(t, s.ReplaceChain(chain, older))
	assert.Equal(t, newChain, s.Get().Chain)
}

func TestGetReturnsCopy(t *testing.T) {
	s := store.New()
	gen := s.NextSyncGeneration()
	require.True(t, s.ReplaceChain(models.Chain{{Index: 1}}, gen))

	snap := s.Get()
	snap.Chain[0].Index = 42
	assert.Equal(t, uint64(1), s.Get().Chain[0].Index)
}

func TestSetField(t *testing.T) {
	s := store.New()

	s.SetField(store.FieldSender, "alice")
	s.SetField(store.FieldRecipient, "bob")
	s.SetField(store.FieldAmount, "10")
	s.SetField("unknown", "ignored")

	snap := s.Get()
	assert.Equal(t, "alice", snap.Sender)
	assert.Equal(t, "bob", snap.Recipient)
	assert.Equal(t, "10", snap.Amount)

	s.SetField(store.FieldSender, "")
	assert.Empty(t, s.Get().Sender)
}

func TestSetStatus(t *testing.T) {
	s := store.New()
	assert.Empty(t, s.Get().Status)

	s.SetStatus("Transaction submitted")
	assert.Equal(t, "Transaction submitted", s.Get().Status)

	// The status slot holds exactly one line.
	s.SetStatus("Mined block 2")
	assert.Equal(t, "Mined block 2", s.Get().Status)
}
