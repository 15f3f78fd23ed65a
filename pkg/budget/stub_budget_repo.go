package budget

import (
	"context"

	"github.com/finbook/finbook/internal/utils"
)

type StubBudgetRepo struct {
	data map[utils.MonthKey][]Item
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[utils.MonthKey][]Item{}}
}

func (s *StubBudgetRepo) GetForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]Item, error) {
	return s.data[month], nil
}

func (s *StubBudgetRepo) ReplaceMonth(ctx context.Context, userId int, month utils.MonthKey, items []Item) error {
	s.data[month] = items
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[utils.MonthKey][]Item{}
}
