package core

import (
	"math"
	"sort"
	"strings"
)

// essentialCategories is the fixed lookup set for the 50/30/20 planner.
// Everything else counts as discretionary.
var essentialCategories = map[string]struct{}{
	"rent":           {},
	"groceries":      {},
	"utilities":      {},
	"transportation": {},
	"healthcare":     {},
}

// PlanCategory is one expense category's slice of the 50/30/20 plan.
type PlanCategory struct {
	Category    string
	Spent       Money
	Percentage  float64 // share of total expense
	Essential   bool
	Recommended Money // share of the essentials or discretionary bucket
}

// Plan is a 50/30/20 budget recommendation derived from monthly income and
// observed expenses.
type Plan struct {
	Income        Money
	Essentials    Money // 50%
	Discretionary Money // 30%
	Savings       Money // 20%
	Categories    []PlanCategory // sorted by category
}

// BuildPlan splits the income into 50/30/20 buckets and distributes the
// essentials and discretionary buckets over the observed expense categories
// proportionally to their share of total expense. A zero total expense
// yields zero shares for every category.
func BuildPlan(income Money, expenses []Transaction) Plan {
	plan := Plan{
		Income:        income,
		Essentials:    Money{Cents: income.Cents * 50 / 100},
		Discretionary: Money{Cents: income.Cents * 30 / 100},
		Savings:       Money{Cents: income.Cents * 20 / 100},
	}

	byCategory := make(map[string]int64)
	var total int64
	for _, t := range expenses {
		if t.Kind != Expense {
			continue
		}
		byCategory[t.Category] += t.Amount.Cents
		total += t.Amount.Cents
	}

	for name, cents := range byCategory {
		_, essential := essentialCategories[strings.ToLower(strings.TrimSpace(name))]
		pc := PlanCategory{
			Category:  name,
			Spent:     Money{Cents: cents},
			Essential: essential,
		}
		if total > 0 {
			share := float64(cents) / float64(total)
			pc.Percentage = share * 100
			bucket := plan.Discretionary
			if essential {
				bucket = plan.Essentials
			}
			pc.Recommended = Money{Cents: int64(math.Round(share * float64(bucket.Cents)))}
		}
		plan.Categories = append(plan.Categories, pc)
	}
	sort.Slice(plan.Categories, func(i, j int) bool {
		return plan.Categories[i].Category < plan.Categories[j].Category
	})

	return plan
}
