package http

import (
	"time"

	"fintrack/internal/core"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *core.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTransactionResponse(t *core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Amount:      t.Amount.String(),
		Date:        t.Date.Format(dateLayout),
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTransactionResponses(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i]))
	}
	return out
}

type budgetResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	SpentCents  int64     `json:"spent_cents"`
	Spent       string    `json:"spent"`
	PercentUsed float64   `json:"percent_used"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBudgetResponse(b *core.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		Title:       b.Title,
		AmountCents: b.Amount.Cents,
		Amount:      b.Amount.String(),
		SpentCents:  b.Spent.Cents,
		Spent:       b.Spent.String(),
		PercentUsed: b.PercentUsed,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBudgetResponses(budgets []core.Budget) []budgetResponse {
	out := make([]budgetResponse, 0, len(budgets))
	for i := range budgets {
		out = append(out, toBudgetResponse(&budgets[i]))
	}
	return out
}

type goalResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TargetCents  int64     `json:"target_cents"`
	Target       string    `json:"target"`
	CurrentCents int64     `json:"current_cents"`
	Current      string    `json:"current"`
	Deadline     string    `json:"deadline"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toGoalResponse(g *core.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetCents:  g.Target.Cents,
		Target:       g.Target.String(),
		CurrentCents: g.Current.Cents,
		Current:      g.Current.String(),
		Deadline:     g.Deadline.Format(dateLayout),
		Status:       string(g.Status),
		Notes:        g.Notes,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toGoalResponses(goals []core.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, toGoalResponse(&goals[i]))
	}
	return out
}

type categoryAmountResponse struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type monthFlowResponse struct {
	Month         string `json:"month"`
	IncomeCents   int64  `json:"income_cents"`
	Income        string `json:"income"`
	ExpenseCents  int64  `json:"expense_cents"`
	Expense       string `json:"expense"`
	NetCents      int64  `json:"net_cents"`
	Net           string `json:"net"`
}

type transactionReportResponse struct {
	TotalIncomeCents  int64                    `json:"total_income_cents"`
	TotalIncome       string                   `json:"total_income"`
	TotalExpenseCents int64                    `json:"total_expense_cents"`
	TotalExpense      string                   `json:"total_expense"`
	NetBalanceCents   int64                    `json:"net_balance_cents"`
	NetBalance        string                   `json:"net_balance"`
	ByCategory        []categoryAmountResponse `json:"by_category"`
	MonthlyTrend      []monthFlowResponse      `json:"monthly_trend"`
}

func toTransactionReportResponse(rep core.TransactionReport) transactionReportResponse {
	out := transactionReportResponse{
		TotalIncomeCents:  rep.TotalIncome.Cents,
		TotalIncome:       rep.TotalIncome.String(),
		TotalExpenseCents: rep.TotalExpense.Cents,
		TotalExpense:      rep.TotalExpense.String(),
		NetBalanceCents:   rep.NetBalance.Cents,
		NetBalance:        rep.NetBalance.String(),
		ByCategory:        make([]categoryAmountResponse, 0, len(rep.ByCategory)),
		MonthlyTrend:      make([]monthFlowResponse, 0, len(rep.MonthlyTrend)),
	}
	for _, c := range rep.ByCategory {
		out.ByCategory = append(out.ByCategory, categoryAmountResponse{
			Category:    c.Category,
			AmountCents: c.Amount.Cents,
			Amount:      c.Amount.String(),
		})
	}
	for _, m := range rep.MonthlyTrend {
		net := core.Money{Cents: m.Income.Cents - m.Expense.Cents}
		out.MonthlyTrend = append(out.MonthlyTrend, monthFlowResponse{
			Month:        m.Month,
			IncomeCents:  m.Income.Cents,
			Income:       m.Income.String(),
			ExpenseCents: m.Expense.Cents,
			Expense:      m.Expense.String(),
			NetCents:     net.Cents,
			Net:          net.String(),
		})
	}
	return out
}

type budgetCategoryResponse struct {
	Category       string  `json:"category"`
	AllocatedCents int64   `json:"allocated_cents"`
	Allocated      string  `json:"allocated"`
	SpentCents     int64   `json:"spent_cents"`
	Spent          string  `json:"spent"`
	PercentUsed    float64 `json:"percent_used"`
}

type budgetReportResponse struct {
	TotalAllocatedCents int64                    `json:"total_allocated_cents"`
	TotalAllocated      string                   `json:"total_allocated"`
	TotalSpentCents     int64                    `json:"total_spent_cents"`
	TotalSpent          string                   `json:"total_spent"`
	ByCategory          []budgetCategoryResponse `json:"by_category"`
}

func toBudgetReportResponse(rep core.BudgetReport) budgetReportResponse {
	out := budgetReportResponse{
		TotalAllocatedCents: rep.TotalAllocated.Cents,
		TotalAllocated:      rep.TotalAllocated.String(),
		TotalSpentCents:     rep.TotalSpent.Cents,
		TotalSpent:          rep.TotalSpent.String(),
		ByCategory:          make([]budgetCategoryResponse, 0, len(rep.ByCategory)),
	}
	for _, c := range rep.ByCategory {
		out.ByCategory = append(out.ByCategory, budgetCategoryResponse{
			Category:       c.Category,
			AllocatedCents: c.Allocated.Cents,
			Allocated:      c.Allocated.String(),
			SpentCents:     c.Spent.Cents,
			Spent:          c.Spent.String(),
			PercentUsed:    core.BudgetPercentUsed(c.Spent, c.Allocated),
		})
	}
	return out
}

type planCategoryResponse struct {
	Category         string  `json:"category"`
	SpentCents       int64   `json:"spent_cents"`
	Spent            string  `json:"spent"`
	Percentage       float64 `json:"percentage"`
	Essential        bool    `json:"essential"`
	RecommendedCents int64   `json:"recommended_cents"`
	Recommended      string  `json:"recommended"`
}

type planResponse struct {
	IncomeCents        int64                  `json:"income_cents"`
	Income             string                 `json:"income"`
	EssentialsCents    int64                  `json:"essentials_cents"`
	Essentials         string                 `json:"essentials"`
	DiscretionaryCents int64                  `json:"discretionary_cents"`
	Discretionary      string                 `json:"discretionary"`
	SavingsCents       int64                  `json:"savings_cents"`
	Savings            string                 `json:"savings"`
	Categories         []planCategoryResponse `json:"categories"`
}

func toPlanResponse(plan core.Plan) planResponse {
	out := planResponse{
		IncomeCents:        plan.Income.Cents,
		Income:             plan.Income.String(),
		EssentialsCents:    plan.Essentials.Cents,
		Essentials:         plan.Essentials.String(),
		DiscretionaryCents: plan.Discretionary.Cents,
		Discretionary:      plan.Discretionary.String(),
		SavingsCents:       plan.Savings.Cents,
		Savings:            plan.Savings.String(),
		Categories:         make([]planCategoryResponse, 0, len(plan.Categories)),
	}
	for _, c := range plan.Categories {
		out.Categories = append(out.Categories, planCategoryResponse{
			Category:         c.Category,
			SpentCents:       c.Spent.Cents,
			Spent:            c.Spent.String(),
			Percentage:       c.Percentage,
			Essential:        c.Essential,
			RecommendedCents: c.Recommended.Cents,
			Recommended:      c.Recommended.String(),
		})
	}
	return out
}
