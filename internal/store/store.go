package store

import "github.com/openledger/yalc/internal/models"

// Field names the session state accepts.
const (
	FieldSender    = "sender"
	FieldRecipient = "recipient"
	FieldAmount    = "amount"
)

// Snapshot is the read-only view handed to presentation code.
type Snapshot struct {
	Chain     models.Chain
	Sender    string
	Recipient string
	Amount    string
	Status    string
}

// Store owns the client's view of the ledger: the last fetched chain plus the
// transient session state. It is mutated only by the core loop goroutine, so
// it carries no lock; readers get copies.
type Store struct {
	chain     models.Chain
	sender    string
	recipient string
	amount    string
	status    string

	nextGen    uint64
	appliedGen uint64
}

func New() *Store {
	return &Store{chain: models.Chain{}}
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Snapshot {
	chain := make(models.Chain, len(s.chain))
	copy(chain, s.chain)
	return Snapshot{
		Chain:     chain,
		Sender:    s.sender,
		Recipient: s.recipient,
		Amount:    s.amount,
		Status:    s.status,
	}
}

// NextSyncGeneration allocates the generation token for a new sync request.
// Generations order concurrent sync responses so a slow response cannot
// overwrite a fresher chain.
func (s *Store) NextSyncGeneration() uint64 {
	s.nextGen++
	return s.nextGen
}

// ReplaceChain swaps the whole chain, total replacement only. A response
// older than the last applied generation is discarded; ReplaceChain reports
// whether the chain was applied.
func (s *Store) ReplaceChain(chain models.Chain, gen uint64) bool {
	if gen < s.appliedGen {
		return false
	}
	s.appliedGen = gen
	s.chain = chain
	return true
}

// SetField replaces one session field. Unknown names are ignored.
func (s *Store) SetField(name, value string) {
	switch name {
	case FieldSender:
		s.sender = value
	case FieldRecipient:
		s.recipient = value
	case FieldAmount:
		s.amount = value
	}
}

// SetStatus replaces the status line.
func (s *Store) SetStatus(message string) {
	s.status = message
}
