package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/openledger/yalc/internal/models"
)

// LedgerClient talks to a single ledger service node over HTTP.
type LedgerClient struct {
	rest *resty.Client
}

// New returns a client for the ledger service at baseURL. A zero timeout
// means requests never time out.
func New(baseURL string, timeout time.Duration) *LedgerClient {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}
	return &LedgerClient{rest: rest}
}

// GetChain fetches the full chain. A successful response whose chain field
// is absent or malformed yields an empty chain; a body that is not valid
// JSON is an error.
func (c *LedgerClient) GetChain(ctx context.Context) (models.Chain, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/chain")
	if err != nil {
		return nil, errors.WithMessage(err, "chain request failed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("chain request returned status %d", resp.StatusCode())
	}

	var envelope struct {
		Chain json.RawMessage `json:"chain"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, errors.WithMessage(err, "failed to parse chain response")
	}

	chain := models.Chain{}
	if len(envelope.Chain) > 0 {
		if err := json.Unmarshal(envelope.Chain, &chain); err != nil {
			slog.Warn("Malformed chain field in response, defaulting to empty chain", "error", err)
			return models.Chain{}, nil
		}
		if chain == nil {
			chain = models.Chain{}
		}
	}
	return chain, nil
}

// NewTransaction proposes a transaction for inclusion in a future block and
// returns the service's acknowledgement message, which may be empty.
func (c *LedgerClient) NewTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tx).
		Post("/transactions/new")
	if err != nil {
		return "", errors.WithMessage(err, "transaction request failed")
	}
	if !resp.IsSuccess() {
		return "", errors.Errorf("transaction request returned status %d", resp.StatusCode())
	}

	var body models.MessageResponse
	// A 2xx acknowledgement with an unreadable body still counts as accepted;
	// the caller substitutes a fallback message.
	_ = json.Unmarshal(resp.Body(), &body)
	return body.Message, nil
}

// Mine asks the service to forge the next block.
func (c *LedgerClient) Mine(ctx context.Context) (*models.MineResponse, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/mine")
	if err != nil {
		return nil, errors.WithMessage(err, "mine request failed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("mine request returned status %d", resp.StatusCode())
	}

	var body models.MineResponse
	_ = json.Unmarshal(resp.Body(), &body)
	return &body, nil
}

// RegisterNodes announces peer addresses to the service.
func (c *LedgerClient) RegisterNodes(ctx context.Context, nodes []string) (*models.RegisterNodesResponse, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]string{"nodes": nodes}).
		Post("/nodes/register")
	if err != nil {
		return nil, errors.WithMessage(err, "node registration request failed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("node registration returned status %d", resp.StatusCode())
	}

	var body models.RegisterNodesResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, errors.WithMessage(err, "failed to parse node registration response")
	}
	return &body, nil
}

// ResolveConflicts asks the service to run its consensus algorithm.
func (c *LedgerClient) ResolveConflicts(ctx context.Context) (*models.ResolveResponse, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/nodes/resolve")
	if err != nil {
		return nil, errors.WithMessage(err, "resolve request failed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("resolve request returned status %d", resp.StatusCode())
	}

	var body models.ResolveResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, errors.WithMessage(err, "failed to parse resolve response")
	}
	return &body, nil
}
