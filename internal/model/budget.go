package model

import "github.com/shopspring/decimal"

// Budget is the derived allocation for one category.
type Budget struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
	Monthly decimal.Decimal `json:"monthly"`
	Daily   decimal.Decimal `json:"daily"`
}

// SpendLine compares recorded spending with a category's monthly budget.
type SpendLine struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Over      bool            `json:"over"`
}

// GoalPlan is the derived view of a savings goal.
type GoalPlan struct {
	Active        bool            `json:"active"`
	Target        decimal.Decimal `json:"target"`
	Months        int             `json:"months"`
	PerMonth      decimal.Decimal `json:"per_month"`
	SavingsBudget decimal.Decimal `json:"savings_budget"`
	Tight         bool            `json:"tight"`
}

// Report holds every derived value for one month. It is never stored.
type Report struct {
	Month         MonthKey        `json:"month"`
	Days          int             `json:"days"`
	Income        Income          `json:"income"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`

	TotalPercent decimal.Decimal `json:"total_percent"`
	Balanced     bool            `json:"balanced"`

	Budgets []Budget    `json:"budgets"`
	Goal    GoalPlan    `json:"goal"`
	Lines   []SpendLine `json:"lines"`

	TotalBudgeted  decimal.Decimal `json:"total_budgeted"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	OverCount      int             `json:"over_count"`
}
