package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// ReportService builds aggregated views over a user's stored records.
type ReportService struct {
	repo   *storage.SQLiteRepository
	logger *log.Logger
}

func NewReportService(repo *storage.SQLiteRepository, logger *log.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentReports),
	}
}

// TransactionReport aggregates the user's transactions.
func (s *ReportService) TransactionReport(ctx context.Context, userID int64) (core.TransactionReport, error) {
	txs, err := s.repo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return core.TransactionReport{}, err
	}
	return core.BuildTransactionReport(txs), nil
}

// BudgetReport aggregates the user's budgets per category.
func (s *ReportService) BudgetReport(ctx context.Context, userID int64) (core.BudgetReport, error) {
	budgets, err := s.repo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return core.BudgetReport{}, err
	}
	return core.BuildBudgetReport(budgets), nil
}

// Plan builds a 50/30/20 recommendation from the given monthly income and
// the user's recorded expenses.
func (s *ReportService) Plan(ctx context.Context, userID int64, income core.Money) (core.Plan, error) {
	if err := income.Validate(); err != nil {
		return core.Plan{}, invalid(err)
	}
	txs, err := s.repo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return core.Plan{}, err
	}
	return core.BuildPlan(income, txs), nil
}
