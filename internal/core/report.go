package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// MonthFlow is the income/expense flow for one "YYYY-MM" month.
type MonthFlow struct {
	Month   string
	Income  Money
	Expense Money
}

// TransactionReport summarizes a set of transactions. Aggregation is
// order-independent: permuting the input yields an identical report.
type TransactionReport struct {
	TotalIncome  Money
	TotalExpense Money
	NetBalance   Money
	ByCategory   []CategoryAmount // amount per category regardless of kind, sorted by name
	MonthlyTrend []MonthFlow      // sorted ascending by month key
}

// BudgetCategorySummary sums allocated and spent amounts for one category.
type BudgetCategorySummary struct {
	Category  string
	Allocated Money
	Spent     Money
}

// BudgetReport summarizes a set of budgets per category.
type BudgetReport struct {
	TotalAllocated Money
	TotalSpent     Money
	ByCategory     []BudgetCategorySummary // sorted by category
}

// BuildTransactionReport aggregates totals, the per-category breakdown and
// the monthly trend for the given transactions.
func BuildTransactionReport(txs []Transaction) TransactionReport {
	var report TransactionReport
	byCategory := make(map[string]int64)
	byMonth := make(map[string]*MonthFlow)

	for _, t := range txs {
		switch t.Kind {
		case Income:
			report.TotalIncome.Cents += t.Amount.Cents
		case Expense:
			report.TotalExpense.Cents += t.Amount.Cents
		}
		byCategory[t.Category] += t.Amount.Cents

		key := t.Date.MonthKey()
		flow, ok := byMonth[key]
		if !ok {
			flow = &MonthFlow{Month: key}
			byMonth[key] = flow
		}
		if t.Kind == Income {
			flow.Income.Cents += t.Amount.Cents
		} else {
			flow.Expense.Cents += t.Amount.Cents
		}
	}

	report.NetBalance.Cents = report.TotalIncome.Cents - report.TotalExpense.Cents

	for name, cents := range byCategory {
		report.ByCategory = append(report.ByCategory, CategoryAmount{Category: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		return report.ByCategory[i].Category < report.ByCategory[j].Category
	})

	for _, flow := range byMonth {
		report.MonthlyTrend = append(report.MonthlyTrend, *flow)
	}
	sort.Slice(report.MonthlyTrend, func(i, j int) bool {
		return report.MonthlyTrend[i].Month < report.MonthlyTrend[j].Month
	})

	return report
}

// BuildBudgetReport sums allocated and spent amounts separately per category.
func BuildBudgetReport(budgets []Budget) BudgetReport {
	var report BudgetReport
	byCategory := make(map[string]*BudgetCategorySummary)

	for _, b := range budgets {
		report.TotalAllocated.Cents += b.Amount.Cents
		report.TotalSpent.Cents += b.Spent.Cents

		s, ok := byCategory[b.Category]
		if !ok {
			s = &BudgetCategorySummary{Category: b.Category}
			byCategory[b.Category] = s
		}
		s.Allocated.Cents += b.Amount.Cents
		s.Spent.Cents += b.Spent.Cents
	}

	for _, s := range byCategory {
		report.ByCategory = append(report.ByCategory, *s)
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		return report.ByCategory[i].Category < report.ByCategory[j].Category
	})

	return report
}
