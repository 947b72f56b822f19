package core

import (
	"math/rand"
	"reflect"
	"testing"
)

func tx(kind Kind, category string, cents int64, year, month, day int) Transaction {
	return Transaction{
		Kind:     kind,
		Category: category,
		Amount:   Money{Cents: cents},
		Date:     NewDate(year, month, day),
	}
}

func TestBuildTransactionReportTotals(t *testing.T) {
	txs := []Transaction{
		tx(Income, "salary", 10000, 2025, 1, 1),
		tx(Expense, "groceries", 4000, 2025, 1, 10),
		tx(Expense, "groceries", 1000, 2025, 2, 3),
	}
	report := BuildTransactionReport(txs)

	if report.TotalIncome.Cents != 10000 {
		t.Fatalf("total income %d", report.TotalIncome.Cents)
	}
	if report.TotalExpense.Cents != 5000 {
		t.Fatalf("total expense %d", report.TotalExpense.Cents)
	}
	if report.NetBalance.Cents != 5000 {
		t.Fatalf("net balance %d", report.NetBalance.Cents)
	}

	wantCategories := []CategoryAmount{
		{Category: "groceries", Amount: Money{Cents: 5000}},
		{Category: "salary", Amount: Money{Cents: 10000}},
	}
	if !reflect.DeepEqual(report.ByCategory, wantCategories) {
		t.Fatalf("by category: %+v", report.ByCategory)
	}

	wantTrend := []MonthFlow{
		{Month: "2025-01", Income: Money{Cents: 10000}, Expense: Money{Cents: 4000}},
		{Month: "2025-02", Expense: Money{Cents: 1000}},
	}
	if !reflect.DeepEqual(report.MonthlyTrend, wantTrend) {
		t.Fatalf("monthly trend: %+v", report.MonthlyTrend)
	}
}

func TestBuildTransactionReportOrderIndependent(t *testing.T) {
	txs := []Transaction{
		tx(Income, "salary", 10000, 2025, 1, 1),
		tx(Expense, "rent", 6000, 2025, 1, 2),
		tx(Expense, "groceries", 1500, 2025, 2, 5),
		tx(Income, "freelance", 2500, 2025, 3, 9),
		tx(Expense, "groceries", 500, 2024, 12, 30),
	}
	want := BuildTransactionReport(txs)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := BuildTransactionReport(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d produced a different report", i)
		}
	}
}

func TestBuildTransactionReportEmpty(t *testing.T) {
	report := BuildTransactionReport(nil)
	if report.TotalIncome.Cents != 0 || report.TotalExpense.Cents != 0 || report.NetBalance.Cents != 0 {
		t.Fatalf("expected zero totals: %+v", report)
	}
	if len(report.ByCategory) != 0 || len(report.MonthlyTrend) != 0 {
		t.Fatalf("expected empty breakdowns: %+v", report)
	}
}

func TestBuildBudgetReport(t *testing.T) {
	budgets := []Budget{
		{Category: "groceries", Amount: Money{Cents: 20000}, Spent: Money{Cents: 5000}},
		{Category: "groceries", Amount: Money{Cents: 10000}, Spent: Money{Cents: 2000}},
		{Category: "rent", Amount: Money{Cents: 80000}, Spent: Money{Cents: 80000}},
	}
	report := BuildBudgetReport(budgets)

	if report.TotalAllocated.Cents != 110000 || report.TotalSpent.Cents != 87000 {
		t.Fatalf("totals: %+v", report)
	}
	want := []BudgetCategorySummary{
		{Category: "groceries", Allocated: Money{Cents: 30000}, Spent: Money{Cents: 7000}},
		{Category: "rent", Allocated: Money{Cents: 80000}, Spent: Money{Cents: 80000}},
	}
	if !reflect.DeepEqual(report.ByCategory, want) {
		t.Fatalf("by category: %+v", report.ByCategory)
	}
}
