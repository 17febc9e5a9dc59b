package output

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/openledger/yalc/internal/models"
)

// TSVOutputHandler writes blocks and their transactions to two TSV files,
// one row per block and one row per transaction.
type TSVOutputHandler struct {
	blockFile   *os.File
	txFile      *os.File
	blockWriter *bufio.Writer
	txWriter    *bufio.Writer
}

const (
	blocksTSV = "blocks.tsv"
	txsTSV    = "transactions.tsv"
)

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	blockFile, err := os.Create(filepath.Join(outDir, blocksTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create blocks TSV file")
	}

	txFile, err := os.Create(filepath.Join(outDir, txsTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create transactions TSV file")
	}

	return &TSVOutputHandler{
		blockFile:   blockFile,
		txFile:      txFile,
		blockWriter: bufio.NewWriter(blockFile),
		txWriter:    bufio.NewWriter(txFile),
	}, nil
}

func (h *TSVOutputHandler) WriteBlock(_ context.Context, block *models.Block) error {
	line := fmt.Sprintf("%d\t%d\t%s\t%d\n",
		block.Index, block.Proof, block.PreviousHash, len(block.Transactions))
	if _, err := h.blockWriter.WriteString(line); err != nil {
		return err
	}

	for _, tx := range block.Transactions {
		line := fmt.Sprintf("%d\t%s\t%s\t%g\n",
			block.Index, tx.Sender, tx.Recipient, tx.Amount)
		if _, err := h.txWriter.WriteString(line); err != nil {
			return err
		}
	}

	return nil
}

func (h *TSVOutputHandler) Close() error {
	if err := h.blockWriter.Flush(); err != nil {
		slog.Error("failed to flush block writer", "error", err)
		return err
	}
	if err := h.txWriter.Flush(); err != nil {
		slog.Error("failed to flush tx writer", "error", err)
		return err
	}
	if err := h.blockFile.Close(); err != nil {
		slog.Error("failed to close block file", "error", err)
		return err
	}
	if err := h.txFile.Close(); err != nil {
		slog.Error("failed to close tx file", "error", err)
		return err
	}
	return nil
}
