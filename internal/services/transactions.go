package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// RecalcPublisher publishes budget recalc requests to the worker queue.
// *amqp.Client satisfies it.
type RecalcPublisher interface {
	PublishBudgetRecalc(ctx context.Context, userID int64, category string) error
}

// TransactionService handles transaction CRUD. Expense writes trigger a
// budget spent recalculation for the touched categories: through the queue
// when one is configured, synchronously otherwise.
type TransactionService struct {
	repo      *storage.SQLiteRepository
	publisher RecalcPublisher // nil when AMQP is not configured
	recalc    *Recalculator
	logger    *log.Logger
}

func NewTransactionService(repo *storage.SQLiteRepository, publisher RecalcPublisher, recalc *Recalculator, logger *log.Logger) *TransactionService {
	return &TransactionService{
		repo:      repo,
		publisher: publisher,
		recalc:    recalc,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

// Create validates and persists a new transaction for the user.
func (s *TransactionService) Create(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, t.UserID,
		log.FieldEntityID, t.ID,
		log.FieldKind, string(t.Kind),
		log.FieldAmountCents, t.Amount.Cents)

	if t.Kind == core.Expense {
		s.triggerRecalc(ctx, t.UserID, t.Category)
	}
	return t, nil
}

// List returns the user's transactions in insertion order.
func (s *TransactionService) List(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return s.repo.ListTransactionsByUser(ctx, userID)
}

// Get returns one transaction owned by the user.
func (s *TransactionService) Get(ctx context.Context, id, userID int64) (*core.Transaction, error) {
	return s.repo.GetTransaction(ctx, id, userID)
}

// Update re-validates and rewrites an existing transaction. Both the old and
// the new category are recalculated, since moving an expense between
// categories changes two sums.
func (s *TransactionService) Update(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, invalid(err)
	}

	previous, err := s.repo.GetTransaction(ctx, t.ID, t.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTransaction(ctx, t); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, t.UserID,
		log.FieldEntityID, t.ID)

	if previous.Kind == core.Expense {
		s.triggerRecalc(ctx, t.UserID, previous.Category)
	}
	if t.Kind == core.Expense && (previous.Kind != core.Expense || previous.Category != t.Category) {
		s.triggerRecalc(ctx, t.UserID, t.Category)
	}
	return t, nil
}

// Delete removes a transaction owned by the user.
func (s *TransactionService) Delete(ctx context.Context, id, userID int64) error {
	previous, err := s.repo.GetTransaction(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(ctx, id, userID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldEntityID, id)

	if previous.Kind == core.Expense {
		s.triggerRecalc(ctx, userID, previous.Category)
	}
	return nil
}

// triggerRecalc keeps budget spent amounts in line with the transaction
// table. Publish failures fall back to the synchronous path rather than
// failing the request: the write already succeeded.
func (s *TransactionService) triggerRecalc(ctx context.Context, userID int64, category string) {
	if s.publisher != nil {
		if err := s.publisher.PublishBudgetRecalc(ctx, userID, category); err == nil {
			return
		} else {
			s.logger.WarnContext(ctx, "Recalc publish failed, recalculating synchronously",
				log.FieldError, err,
				log.FieldUserID, userID,
				log.FieldCategory, category)
		}
	}
	if err := s.recalc.RecalcCategory(ctx, userID, category); err != nil {
		s.logger.ErrorContext(ctx, "Budget recalc failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldCategory, category)
	}
}
