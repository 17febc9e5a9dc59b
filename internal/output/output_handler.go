package output

import (
	"context"

	"github.com/openledger/yalc/internal/models"
)

type OutputHandler interface {
	WriteBlock(ctx context.Context, block *models.Block) error
	Close() error
}
