package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"

	GoalInProgress GoalStatus = "in progress"
	GoalAchieved   GoalStatus = "achieved"
)

type (
	Kind       string
	GoalStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		Email        string
		PasswordHash string
		RefreshToken string
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	Transaction struct {
		ID        int64
		UserID    int64
		Kind      Kind
		Category  string
		Amount    Money
		Date      Date
		Notes     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Budget struct {
		ID          int64
		UserID      int64
		Category    string
		Title       string
		Amount      Money // allocated ceiling
		Spent       Money
		PercentUsed float64
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Goal struct {
		ID        int64
		UserID    int64
		Name      string
		Target    Money
		Current   Money
		Deadline  Date
		Status    GoalStatus
		Notes     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyUsername   = errors.New("empty username")
	ErrEmptyEmail      = errors.New("invalid email")
	ErrEmptyPassword   = errors.New("empty password")
	ErrNotesTooLong    = errors.New("notes too long (max 500 characters)")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrMissingDeadline = errors.New("missing deadline")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthKey returns the zero-padded "YYYY-MM" key used for monthly
// aggregation. Lexicographic order of keys equals chronological order.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if !strings.Contains(u.Email, "@") {
		return ErrEmptyEmail
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Notes) > 500 {
		return ErrNotesTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if b.Amount.Cents < 0 || b.Spent.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Target.Cents < 0 || g.Current.Cents < 0 {
		return ErrNegativeAmount
	}
	if g.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	if len(g.Notes) > 500 {
		return ErrNotesTooLong
	}
	return nil
}
