// Package export pushes periodic monthly summaries to an external sheet.
package export

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// SummaryWriter is the outbound port for the monthly summary. The Google
// Sheets client and the in-memory store both satisfy it.
type SummaryWriter interface {
	WriteMonthlySummary(ctx context.Context, months []core.MonthFlow) (ref string, err error)
}

// Exporter rebuilds the monthly income/expense trend from stored
// transactions and writes it through a SummaryWriter.
type Exporter struct {
	repo   *storage.SQLiteRepository
	writer SummaryWriter
	logger *log.Logger
}

func NewExporter(repo *storage.SQLiteRepository, writer SummaryWriter, logger *log.Logger) *Exporter {
	return &Exporter{
		repo:   repo,
		writer: writer,
		logger: logger.WithComponent(log.ComponentExport),
	}
}

// Run performs one export. The summary is rebuilt from scratch each time, so
// a failed or skipped run is caught up by the next one.
func (e *Exporter) Run(ctx context.Context) error {
	txs, err := e.repo.ListAllTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	months := core.BuildTransactionReport(txs).MonthlyTrend
	ref, err := e.writer.WriteMonthlySummary(ctx, months)
	if err != nil {
		return fmt.Errorf("write monthly summary: %w", err)
	}

	e.logger.InfoContext(ctx, "Monthly summary exported",
		log.FieldOperation, log.OpExport,
		log.FieldSheetsRef, ref,
		"months", len(months))
	return nil
}
