package models

// Transaction represents a proposed transfer pending inclusion in a block.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// Block represents a sealed batch of transactions plus linkage and proof metadata.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    float64       `json:"timestamp,omitempty"`
	Transactions []Transaction `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

// Chain is the ordered block history as reported by the ledger service.
type Chain []Block

// ChainResponse is the GET /chain envelope.
type ChainResponse struct {
	Chain  Chain `json:"chain"`
	Length int   `json:"length"`
}

// MessageResponse is the generic {message} envelope returned by mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// MineResponse is the GET /mine envelope describing the freshly forged block.
type MineResponse struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []Transaction `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

// RegisterNodesResponse is the POST /nodes/register envelope.
type RegisterNodesResponse struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

// ResolveResponse is the GET /nodes/resolve envelope. The service populates
// NewChain when its chain was replaced and Chain when it stayed authoritative.
type ResolveResponse struct {
	Message  string `json:"message"`
	Chain    Chain  `json:"chain"`
	NewChain Chain  `json:"new_chain"`
}
