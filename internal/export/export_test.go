package export_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/export/memory"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

func TestExporterWritesMonthlyTrend(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	user := &core.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, repo.CreateUser(ctx, user))

	seed := []struct {
		kind  core.Kind
		cents int64
		month int
	}{
		{core.Income, 200000, 1},
		{core.Expense, 80000, 1},
		{core.Expense, 20000, 2},
	}
	for _, s := range seed {
		require.NoError(t, repo.CreateTransaction(ctx, &core.Transaction{
			UserID:   user.ID,
			Kind:     s.kind,
			Category: "misc",
			Amount:   core.Money{Cents: s.cents},
			Date:     core.NewDate(2026, s.month, 15),
		}))
	}

	sink := memory.New()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	exporter := export.NewExporter(repo, sink, logger)

	require.NoError(t, exporter.Run(ctx))
	require.Equal(t, 1, sink.Writes())

	months := sink.Last()
	require.Len(t, months, 2)
	assert.Equal(t, "2026-01", months[0].Month)
	assert.Equal(t, int64(200000), months[0].Income.Cents)
	assert.Equal(t, int64(80000), months[0].Expense.Cents)
	assert.Equal(t, "2026-02", months[1].Month)
	assert.Equal(t, int64(20000), months[1].Expense.Cents)
}

func TestExporterEmptyDatabase(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	sink := memory.New()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	exporter := export.NewExporter(repo, sink, logger)

	require.NoError(t, exporter.Run(context.Background()))
	assert.Equal(t, 1, sink.Writes())
	assert.Empty(t, sink.Last())
}
