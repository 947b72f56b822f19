package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// BudgetService handles budget CRUD. The spent amount is never taken from
// the client: it is computed from the user's expense transactions on every
// create and update, and the percent used is re-derived with it.
type BudgetService struct {
	repo   *storage.SQLiteRepository
	logger *log.Logger
}

func NewBudgetService(repo *storage.SQLiteRepository, logger *log.Logger) *BudgetService {
	return &BudgetService{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentService),
	}
}

// Create validates, derives and persists a new budget for the user.
func (s *BudgetService) Create(ctx context.Context, b *core.Budget) (*core.Budget, error) {
	if err := b.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.deriveSpent(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Budget created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, b.UserID,
		log.FieldEntityID, b.ID,
		log.FieldCategory, b.Category)
	return b, nil
}

// List returns the user's budgets in insertion order.
func (s *BudgetService) List(ctx context.Context, userID int64) ([]core.Budget, error) {
	return s.repo.ListBudgetsByUser(ctx, userID)
}

// Get returns one budget owned by the user.
func (s *BudgetService) Get(ctx context.Context, id, userID int64) (*core.Budget, error) {
	return s.repo.GetBudget(ctx, id, userID)
}

// Update re-validates, re-derives and rewrites an existing budget.
func (s *BudgetService) Update(ctx context.Context, b *core.Budget) (*core.Budget, error) {
	if err := b.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.deriveSpent(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Budget updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, b.UserID,
		log.FieldEntityID, b.ID)
	return b, nil
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.DeleteBudget(ctx, id, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budget deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldEntityID, id)
	return nil
}

func (s *BudgetService) deriveSpent(ctx context.Context, b *core.Budget) error {
	sum, err := s.repo.SumExpensesByCategory(ctx, b.UserID, b.Category)
	if err != nil {
		return err
	}
	b.Spent = core.Money{Cents: sum}
	b.Derive()
	return nil
}
