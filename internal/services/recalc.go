package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Recalculator recomputes budget spent amounts from the transaction table.
// The sum over expense transactions is the single source of truth, so a
// recalculation is idempotent and safe to repeat after lost messages or
// crashes.
type Recalculator struct {
	repo   *storage.SQLiteRepository
	logger *log.Logger
}

func NewRecalculator(repo *storage.SQLiteRepository, logger *log.Logger) *Recalculator {
	return &Recalculator{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentService),
	}
}

// RecalcCategory rewrites spent and percent-used on every budget the user
// holds for the category.
func (r *Recalculator) RecalcCategory(ctx context.Context, userID int64, category string) error {
	sum, err := r.repo.SumExpensesByCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("recalc category %q: %w", category, err)
	}
	spent := core.Money{Cents: sum}

	budgets, err := r.repo.ListBudgetsByCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("recalc category %q: %w", category, err)
	}

	for _, b := range budgets {
		percent := core.BudgetPercentUsed(spent, b.Amount)
		if err := r.repo.UpdateBudgetSpent(ctx, b.ID, spent, percent); err != nil {
			return fmt.Errorf("recalc budget %d: %w", b.ID, err)
		}
	}

	r.logger.DebugContext(ctx, "Recalculated budget spent",
		log.FieldOperation, log.OpRecalc,
		log.FieldUserID, userID,
		log.FieldCategory, category,
		log.FieldAmountCents, sum,
		"budgets", len(budgets))
	return nil
}
