package budget

import (
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
)

// Sections partition spending for the monthly budget plan.
var Sections = []string{"POTREBY", "VOLNY_CAS", "SPORENIE", "INVESTOVANIE"}

func ValidSection(s string) bool {
	for _, section := range Sections {
		if s == section {
			return true
		}
	}
	return false
}

// Item is one section's plan for a month. Spent is derived from the month's
// expenses at read time and never stored.
type Item struct {
	ID            string
	Month         utils.MonthKey
	Section       string
	LimitAmount   money.Cents
	PercentTarget int
	Spent         money.Cents
}
