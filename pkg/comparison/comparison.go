// Package comparison builds the side-by-side month view: two independently
// selected months of the same data lens, with totals, per-section grouping,
// and a trend classification.
package comparison

import (
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
)

// windowSize is the trailing number of months selectable for comparison.
const windowSize = 12

// Lens selects which rows a comparison panel shows.
type Lens string

const (
	LensIncomes  Lens = "incomes"
	LensExpenses Lens = "expenses"
	// LensNeeds narrows expenses to rows assigned to a budget section.
	LensNeeds Lens = "needs"
)

func (l Lens) Valid() bool {
	return l == LensIncomes || l == LensExpenses || l == LensNeeds
}

func (l Lens) kind() transaction.Kind {
	if l == LensIncomes {
		return transaction.KindIncome
	}
	return transaction.KindExpense
}

type Trend string

const (
	TrendUp   Trend = "Up"
	TrendDown Trend = "Down"
	TrendFlat Trend = "Flat"
)

// trendThreshold filters sub-euro noise out of the classification.
const trendThreshold = money.Cents(100)

// ClassifyTrend compares two totals: Up when left leads by more than the
// threshold, Down when it trails by more, Flat otherwise.
func ClassifyTrend(left, right money.Cents) Trend {
	diff := left - right
	switch {
	case diff > trendThreshold:
		return TrendUp
	case diff < -trendThreshold:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Selection is a pair of panel months. Left and right never point at the same
// month.
type Selection struct {
	Left  utils.MonthKey
	Right utils.MonthKey
}

type PanelSide string

const (
	PanelLeft  PanelSide = "left"
	PanelRight PanelSide = "right"
)

// Window returns the trailing window of selectable months ending at current,
// oldest first.
func Window(current utils.MonthKey) []utils.MonthKey {
	window := make([]utils.MonthKey, windowSize)
	for i := 0; i < windowSize; i++ {
		window[i] = current.Add(i - windowSize + 1)
	}
	return window
}

// Step moves one panel of the selection by delta months. Stepping past either
// window edge is a no-op. When the move would land on the other panel's
// month, the other panel is pushed one step in the same direction; if the
// push has no room, nothing moves.
func Step(window []utils.MonthKey, sel Selection, side PanelSide, delta int) Selection {
	if len(window) == 0 || (delta != 1 && delta != -1) {
		return sel
	}
	moved, ok := shift(window, active(sel, side), delta)
	if !ok {
		return sel
	}
	other := passive(sel, side)
	if moved == other {
		pushed, ok := shift(window, other, delta)
		if !ok {
			return sel
		}
		other = pushed
	}
	return assemble(side, moved, other)
}

// Clamp pulls both panel months into the window and separates them when they
// collide. An empty left defaults to the oldest month, an empty right to the
// newest.
func Clamp(window []utils.MonthKey, sel Selection) Selection {
	first, last := window[0], window[len(window)-1]
	if sel.Left == "" || string(sel.Left) < string(first) {
		sel.Left = first
	}
	if string(sel.Left) > string(last) {
		sel.Left = last
	}
	if sel.Right == "" || string(sel.Right) > string(last) {
		sel.Right = last
	}
	if string(sel.Right) < string(first) {
		sel.Right = first
	}
	if sel.Left == sel.Right {
		if moved, ok := shift(window, sel.Left, -1); ok {
			sel.Left = moved
		} else if moved, ok := shift(window, sel.Right, 1); ok {
			sel.Right = moved
		}
	}
	return sel
}

func shift(window []utils.MonthKey, month utils.MonthKey, delta int) (utils.MonthKey, bool) {
	for i, m := range window {
		if m == month {
			next := i + delta
			if next < 0 || next >= len(window) {
				return month, false
			}
			return window[next], true
		}
	}
	return month, false
}

func active(sel Selection, side PanelSide) utils.MonthKey {
	if side == PanelLeft {
		return sel.Left
	}
	return sel.Right
}

func passive(sel Selection, side PanelSide) utils.MonthKey {
	if side == PanelLeft {
		return sel.Right
	}
	return sel.Left
}

func assemble(side PanelSide, moved, other utils.MonthKey) Selection {
	if side == PanelLeft {
		return Selection{Left: moved, Right: other}
	}
	return Selection{Left: other, Right: moved}
}

// GroupBySection sums rows per section label. Rows without a section are
// excluded rather than bucketed.
func GroupBySection(rows []transaction.Transaction) map[string]money.Cents {
	groups := make(map[string]money.Cents)
	for _, row := range rows {
		if row.Section == "" {
			continue
		}
		groups[row.Section] += row.Amount
	}
	return groups
}
