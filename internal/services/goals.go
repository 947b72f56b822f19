package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// GoalService handles savings goal CRUD. The status field is always derived
// from the amounts; a contradictory requested status is silently corrected.
type GoalService struct {
	repo   *storage.SQLiteRepository
	logger *log.Logger
}

func NewGoalService(repo *storage.SQLiteRepository, logger *log.Logger) *GoalService {
	return &GoalService{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentService),
	}
}

// Create validates, derives and persists a new goal for the user.
func (s *GoalService) Create(ctx context.Context, g *core.Goal) (*core.Goal, error) {
	if err := g.Validate(); err != nil {
		return nil, invalid(err)
	}
	g.Derive()
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Goal created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, g.UserID,
		log.FieldEntityID, g.ID)
	return g, nil
}

// List returns the user's goals in insertion order.
func (s *GoalService) List(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.repo.ListGoalsByUser(ctx, userID)
}

// Get returns one goal owned by the user.
func (s *GoalService) Get(ctx context.Context, id, userID int64) (*core.Goal, error) {
	return s.repo.GetGoal(ctx, id, userID)
}

// Update re-validates, re-derives and rewrites an existing goal. The same
// derivation applies as on create.
func (s *GoalService) Update(ctx context.Context, g *core.Goal) (*core.Goal, error) {
	if err := g.Validate(); err != nil {
		return nil, invalid(err)
	}
	g.Derive()
	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Goal updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, g.UserID,
		log.FieldEntityID, g.ID)
	return g, nil
}

// Delete removes a goal owned by the user.
func (s *GoalService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.DeleteGoal(ctx, id, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Goal deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldEntityID, id)
	return nil
}
