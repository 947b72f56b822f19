package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fintrack/internal/core"
)

const (
	dateLayout   = "2006-01-02"
	maxBodyBytes = 1 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID extracts the numeric {id} route variable. The route pattern already
// constrains it to digits.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse(dateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	return core.Date{Time: parsedTime}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Amounts arrive as decimal strings ("12.34" or "12,34") and are stored as
// cents. Responses carry both the cents and the formatted value.
type transactionRequest struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

func (req transactionRequest) toCore(userID int64) (*core.Transaction, error) {
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", req.Amount)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &core.Transaction{
		UserID:   userID,
		Kind:     core.Kind(strings.ToLower(strings.TrimSpace(req.Kind))),
		Category: sanitizeInput(req.Category),
		Amount:   amount,
		Date:     date,
		Notes:    sanitizeInput(req.Notes),
	}, nil
}

type budgetRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
}

func (req budgetRequest) toCore(userID int64) (*core.Budget, error) {
	amount, err := core.ParseMoneyAllowZero(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", req.Amount)
	}
	return &core.Budget{
		UserID:   userID,
		Category: sanitizeInput(req.Category),
		Title:    sanitizeInput(req.Title),
		Amount:   amount,
	}, nil
}

type goalRequest struct {
	Name     string `json:"name"`
	Target   string `json:"target"`
	Current  string `json:"current"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func (req goalRequest) toCore(userID int64) (*core.Goal, error) {
	target, err := core.ParseMoneyAllowZero(req.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q", req.Target)
	}
	current := core.Money{}
	if strings.TrimSpace(req.Current) != "" {
		current, err = core.ParseMoneyAllowZero(req.Current)
		if err != nil {
			return nil, fmt.Errorf("invalid current %q", req.Current)
		}
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, err
	}
	return &core.Goal{
		UserID:   userID,
		Name:     sanitizeInput(req.Name),
		Target:   target,
		Current:  current,
		Deadline: deadline,
		Status:   core.GoalStatus(strings.TrimSpace(req.Status)),
		Notes:    sanitizeInput(req.Notes),
	}, nil
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
