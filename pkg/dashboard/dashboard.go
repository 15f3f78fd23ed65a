// Package dashboard assembles the month summary cards: income and expense
// totals, the per-category expense donut, and a short trend series.
package dashboard

import (
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
)

// trendMonths is the length of the income/expense series shown under the
// summary cards.
const trendMonths = 6

// uncategorized is the donut label for receipt items without a category.
const uncategorized = "Uncategorized"

type DonutSlice struct {
	Category   string
	Amount     money.Cents
	Percentage float64
}

type Summary struct {
	Month          utils.MonthKey
	TotalIncomes   money.Cents
	TotalExpenses  money.Cents
	Balance        money.Cents
	Donut          []DonutSlice
	Months         []utils.MonthKey
	SeriesIncomes  []money.Cents
	SeriesExpenses []money.Cents
}
