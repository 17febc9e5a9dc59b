package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/openledger/yalc/internal/models"
)

// MockLedger is an in-process stand-in for the ledger service. It implements
// the endpoints the client consumes: chain retrieval, transaction intake,
// mining and node management. Proof-of-work is skipped; blocks are forged
// with a fixed proof.
type MockLedger struct {
	mu      sync.Mutex
	chain   models.Chain
	pending []models.Transaction
	nodes   []string

	Server *httptest.Server
}

func NewMockLedger() *MockLedger {
	m := &MockLedger{
		chain: models.Chain{{
			Index:        1,
			Proof:        100,
			PreviousHash: "1",
			Transactions: []models.Transaction{},
		}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chain", m.handleChain)
	mux.HandleFunc("/transactions/new", m.handleNewTransaction)
	mux.HandleFunc("/mine", m.handleMine)
	mux.HandleFunc("/nodes/register", m.handleRegisterNodes)
	mux.HandleFunc("/nodes/resolve", m.handleResolve)

	m.Server = httptest.NewServer(mux)
	return m
}

func (m *MockLedger) URL() string { return m.Server.URL }

func (m *MockLedger) Close() { m.Server.Close() }

// Chain returns a copy of the current chain.
func (m *MockLedger) Chain() models.Chain {
	m.mu.Lock()
	defer m.mu.Unlock()

	chain := make(models.Chain, len(m.chain))
	copy(chain, m.chain)
	return chain
}

// Pending returns a copy of the not-yet-forged transactions.
func (m *MockLedger) Pending() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending := make([]models.Transaction, len(m.pending))
	copy(pending, m.pending)
	return pending
}

func (m *MockLedger) handleChain(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ChainResponse{
		Chain:  m.chain,
		Length: len(m.chain),
	})
}

func (m *MockLedger) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "Missing JSON body", http.StatusBadRequest)
		return
	}
	if tx.Sender == "" || tx.Recipient == "" {
		http.Error(w, "Missing values", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = append(m.pending, tx)
	next := m.chain[len(m.chain)-1].Index + 1
	writeJSON(w, http.StatusCreated, models.MessageResponse{
		Message: fmt.Sprintf("Transaction will be added to Block %d", next),
	})
}

func (m *MockLedger) handleMine(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reward := models.Transaction{Sender: "0", Recipient: "mock-node", Amount: 1}
	txs := append(m.pending, reward)
	m.pending = nil

	block := models.Block{
		Index:        m.chain[len(m.chain)-1].Index + 1,
		Transactions: txs,
		Proof:        35293,
		PreviousHash: "mock",
	}
	m.chain = append(m.chain, block)

	writeJSON(w, http.StatusOK, models.MineResponse{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	})
}

func (m *MockLedger) handleRegisterNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Nodes []string `json:"nodes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Nodes == nil {
		http.Error(w, "Missing 'nodes' field", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nodes = append(m.nodes, body.Nodes...)
	writeJSON(w, http.StatusCreated, models.RegisterNodesResponse{
		Message:    "New nodes have been added",
		TotalNodes: m.nodes,
	})
}

func (m *MockLedger) handleResolve(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ResolveResponse{
		Message: "Our chain is authoritative",
		Chain:   m.chain,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
