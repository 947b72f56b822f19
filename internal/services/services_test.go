package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakePublisher records published recalc requests instead of talking to a
// broker. When failWith is set every publish fails.
type fakePublisher struct {
	published []string
	failWith  error
}

func (f *fakePublisher) PublishBudgetRecalc(ctx context.Context, userID int64, category string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.published = append(f.published, category)
	return nil
}

type ServicesTestSuite struct {
	suite.Suite
	repo   *storage.SQLiteRepository
	ctx    context.Context
	logger *log.Logger
	user   *core.User
}

func (s *ServicesTestSuite) SetupTest() {
	repo, err := storage.NewSQLiteRepository(":memory:")
	require.NoError(s.T(), err, "failed to create test database")
	s.repo = repo
	s.ctx = context.Background()
	s.logger = log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})

	s.user = &core.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(s.T(), s.repo.CreateUser(s.ctx, s.user))
}

func (s *ServicesTestSuite) TearDownTest() {
	if s.repo != nil {
		s.repo.Close()
	}
}

func (s *ServicesTestSuite) newTransactionService(pub RecalcPublisher) *TransactionService {
	recalc := NewRecalculator(s.repo, s.logger)
	return NewTransactionService(s.repo, pub, recalc, s.logger)
}

func (s *ServicesTestSuite) expense(category string, cents int64) *core.Transaction {
	return &core.Transaction{
		UserID:   s.user.ID,
		Kind:     core.Expense,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Date:     core.NewDate(2026, 3, 14),
	}
}

func (s *ServicesTestSuite) TestGoalStatusDerivedOnCreate() {
	svc := NewGoalService(s.repo, s.logger)

	g, err := svc.Create(s.ctx, &core.Goal{
		UserID:   s.user.ID,
		Name:     "emergency fund",
		Target:   core.Money{Cents: 1000},
		Current:  core.Money{Cents: 1000},
		Deadline: core.NewDate(2027, 1, 1),
		Status:   core.GoalInProgress, // contradicted by the amounts
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.GoalAchieved, g.Status)

	stored, err := s.repo.GetGoal(s.ctx, g.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.GoalAchieved, stored.Status)
}

func (s *ServicesTestSuite) TestGoalStatusDerivedOnUpdate() {
	svc := NewGoalService(s.repo, s.logger)

	g, err := svc.Create(s.ctx, &core.Goal{
		UserID:   s.user.ID,
		Name:     "vacation",
		Target:   core.Money{Cents: 500},
		Current:  core.Money{Cents: 500},
		Deadline: core.NewDate(2027, 6, 1),
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), core.GoalAchieved, g.Status)

	g.Current = core.Money{Cents: 200}
	g.Status = core.GoalAchieved // stale, must be corrected
	updated, err := svc.Update(s.ctx, g)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.GoalInProgress, updated.Status)
}

func (s *ServicesTestSuite) TestGoalValidation() {
	svc := NewGoalService(s.repo, s.logger)

	_, err := svc.Create(s.ctx, &core.Goal{UserID: s.user.ID, Name: "  ", Deadline: core.NewDate(2027, 1, 1)})
	var verr *ValidationError
	assert.ErrorAs(s.T(), err, &verr)
	assert.ErrorIs(s.T(), err, core.ErrEmptyName)
}

func (s *ServicesTestSuite) TestBudgetSpentComputedFromTransactions() {
	txs := s.newTransactionService(nil)
	budgets := NewBudgetService(s.repo, s.logger)

	_, err := txs.Create(s.ctx, s.expense("groceries", 3000))
	require.NoError(s.T(), err)
	_, err = txs.Create(s.ctx, s.expense("groceries", 2000))
	require.NoError(s.T(), err)
	// Income in the same category must not count as spent.
	_, err = txs.Create(s.ctx, &core.Transaction{
		UserID:   s.user.ID,
		Kind:     core.Income,
		Category: "groceries",
		Amount:   core.Money{Cents: 9999},
		Date:     core.NewDate(2026, 3, 1),
	})
	require.NoError(s.T(), err)

	b, err := budgets.Create(s.ctx, &core.Budget{
		UserID:   s.user.ID,
		Category: "groceries",
		Title:    "Groceries",
		Amount:   core.Money{Cents: 10000},
		Spent:    core.Money{Cents: 123}, // client value, ignored
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(5000), b.Spent.Cents)
	assert.InDelta(s.T(), 50.0, b.PercentUsed, 0.001)
}

func (s *ServicesTestSuite) TestBudgetUpdateRederivesSpent() {
	txs := s.newTransactionService(nil)
	budgets := NewBudgetService(s.repo, s.logger)

	b, err := budgets.Create(s.ctx, &core.Budget{
		UserID:   s.user.ID,
		Category: "transportation",
		Title:    "Commute",
		Amount:   core.Money{Cents: 4000},
	})
	require.NoError(s.T(), err)
	assert.Zero(s.T(), b.Spent.Cents)

	_, err = txs.Create(s.ctx, s.expense("transportation", 1000))
	require.NoError(s.T(), err)

	b.Amount = core.Money{Cents: 2000}
	updated, err := budgets.Update(s.ctx, b)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1000), updated.Spent.Cents)
	assert.InDelta(s.T(), 50.0, updated.PercentUsed, 0.001)
}

func (s *ServicesTestSuite) TestExpenseWriteRecalculatesBudgets() {
	// No publisher configured, the synchronous path runs inline.
	txs := s.newTransactionService(nil)
	budgets := NewBudgetService(s.repo, s.logger)

	b, err := budgets.Create(s.ctx, &core.Budget{
		UserID:   s.user.ID,
		Category: "rent",
		Title:    "Rent",
		Amount:   core.Money{Cents: 100000},
	})
	require.NoError(s.T(), err)

	created, err := txs.Create(s.ctx, s.expense("rent", 75000))
	require.NoError(s.T(), err)

	stored, err := s.repo.GetBudget(s.ctx, b.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(75000), stored.Spent.Cents)
	assert.InDelta(s.T(), 75.0, stored.PercentUsed, 0.001)

	require.NoError(s.T(), txs.Delete(s.ctx, created.ID, s.user.ID))

	stored, err = s.repo.GetBudget(s.ctx, b.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), stored.Spent.Cents)
	assert.Zero(s.T(), stored.PercentUsed)
}

func (s *ServicesTestSuite) TestRecalcPublishedWhenConfigured() {
	pub := &fakePublisher{}
	txs := s.newTransactionService(pub)

	created, err := txs.Create(s.ctx, s.expense("utilities", 500))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"utilities"}, pub.published)

	// Moving the expense to another category touches both sums.
	created.Category = "healthcare"
	_, err = txs.Update(s.ctx, created)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"utilities", "utilities", "healthcare"}, pub.published)
}

func (s *ServicesTestSuite) TestRecalcFallsBackWhenPublishFails() {
	pub := &fakePublisher{failWith: errors.New("broker gone")}
	txs := s.newTransactionService(pub)
	budgets := NewBudgetService(s.repo, s.logger)

	b, err := budgets.Create(s.ctx, &core.Budget{
		UserID:   s.user.ID,
		Category: "groceries",
		Title:    "Groceries",
		Amount:   core.Money{Cents: 10000},
	})
	require.NoError(s.T(), err)

	_, err = txs.Create(s.ctx, s.expense("groceries", 2500))
	require.NoError(s.T(), err)

	stored, err := s.repo.GetBudget(s.ctx, b.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2500), stored.Spent.Cents, "failed publish must recalc synchronously")
}

func (s *ServicesTestSuite) TestIncomeDoesNotTriggerRecalc() {
	pub := &fakePublisher{}
	txs := s.newTransactionService(pub)

	_, err := txs.Create(s.ctx, &core.Transaction{
		UserID:   s.user.ID,
		Kind:     core.Income,
		Category: "salary",
		Amount:   core.Money{Cents: 500000},
		Date:     core.NewDate(2026, 3, 1),
	})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), pub.published)
}

func (s *ServicesTestSuite) TestTransactionValidation() {
	txs := s.newTransactionService(nil)

	_, err := txs.Create(s.ctx, &core.Transaction{
		UserID:   s.user.ID,
		Kind:     "transfer",
		Category: "misc",
		Amount:   core.Money{Cents: 100},
		Date:     core.NewDate(2026, 1, 1),
	})
	var verr *ValidationError
	assert.ErrorAs(s.T(), err, &verr)
	assert.ErrorIs(s.T(), err, core.ErrInvalidKind)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

type AuthServiceTestSuite struct {
	suite.Suite
	repo *storage.SQLiteRepository
	ctx  context.Context
	svc  *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	repo, err := storage.NewSQLiteRepository(":memory:")
	require.NoError(s.T(), err, "failed to create test database")
	s.repo = repo
	s.ctx = context.Background()

	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	tokens := auth.NewManager("test-secret", 15*time.Minute, time.Hour)
	s.svc = NewAuthService(repo, tokens, logger)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	if s.repo != nil {
		s.repo.Close()
	}
}

func (s *AuthServiceTestSuite) register() *core.User {
	user, err := s.svc.Register(s.ctx, "ada", "ada@example.com", "correct horse")
	require.NoError(s.T(), err)
	return user
}

func (s *AuthServiceTestSuite) TestRegisterHashesPassword() {
	user := s.register()
	assert.NotZero(s.T(), user.ID)
	assert.NotEmpty(s.T(), user.PasswordHash)
	assert.NotEqual(s.T(), "correct horse", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegisterRejectsShortPassword() {
	_, err := s.svc.Register(s.ctx, "ada", "ada@example.com", "short")
	var verr *ValidationError
	assert.ErrorAs(s.T(), err, &verr)
}

func (s *AuthServiceTestSuite) TestRegisterRejectsDuplicate() {
	s.register()
	_, err := s.svc.Register(s.ctx, "ada", "other@example.com", "correct horse")
	assert.ErrorIs(s.T(), err, storage.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestLoginIssuesTokenPair() {
	user := s.register()

	access, refresh, err := s.svc.Login(s.ctx, "ada@example.com", "correct horse")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), access)
	assert.NotEmpty(s.T(), refresh)

	stored, err := s.repo.FindUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), refresh, stored.RefreshToken)
}

func (s *AuthServiceTestSuite) TestLoginRejectsBadCredentials() {
	s.register()

	_, _, err := s.svc.Login(s.ctx, "ada@example.com", "wrong password")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	_, _, err = s.svc.Login(s.ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshIssuesNewAccessToken() {
	s.register()
	_, refresh, err := s.svc.Login(s.ctx, "ada@example.com", "correct horse")
	require.NoError(s.T(), err)

	access, err := s.svc.Refresh(s.ctx, refresh)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), access)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsRevokedToken() {
	user := s.register()
	_, refresh, err := s.svc.Login(s.ctx, "ada@example.com", "correct horse")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.Logout(s.ctx, user.ID))

	_, err = s.svc.Refresh(s.ctx, refresh)
	assert.ErrorIs(s.T(), err, auth.ErrInvalidToken)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsGarbage() {
	_, err := s.svc.Refresh(s.ctx, "not a token")
	assert.ErrorIs(s.T(), err, auth.ErrInvalidToken)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
