package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
)

var ErrInvalidSection = errors.New("unknown budget section")

// SectionSums provides the month's expense totals per section. Implemented by
// the transaction repository.
type SectionSums interface {
	SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error)
}

type MonthPlan struct {
	Month      utils.MonthKey
	Items      []Item
	TotalLimit money.Cents
	TotalSpent money.Cents
}

type Service interface {
	GetMonthPlan(ctx context.Context, month utils.MonthKey) (MonthPlan, error)
	ReplaceMonthPlan(ctx context.Context, month utils.MonthKey, items []Item) (MonthPlan, error)
}

type ServiceImpl struct {
	repo Repo
	sums SectionSums
}

func NewBudgetService(repo Repo, sums SectionSums) *ServiceImpl {
	return &ServiceImpl{repo: repo, sums: sums}
}

// GetMonthPlan returns the month's items with spent amounts attached. Spent is
// recomputed from the month's expense rows on every call.
func (s *ServiceImpl) GetMonthPlan(ctx context.Context, month utils.MonthKey) (MonthPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthPlan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	items, err := s.repo.GetForMonth(ctx, userId, month)
	if err != nil {
		return MonthPlan{}, err
	}
	sums, err := s.sums.SumBySection(ctx, userId, transaction.KindExpense, month)
	if err != nil {
		return MonthPlan{}, err
	}

	plan := MonthPlan{Month: month}
	for _, item := range items {
		item.Spent = sums[item.Section]
		plan.Items = append(plan.Items, item)
		plan.TotalLimit += item.LimitAmount
		plan.TotalSpent += item.Spent
	}
	return plan, nil
}

// ReplaceMonthPlan upserts the month wholesale: the submitted set replaces
// whatever was stored, there is no per-row diffing.
func (s *ServiceImpl) ReplaceMonthPlan(ctx context.Context, month utils.MonthKey, items []Item) (MonthPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthPlan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	seen := make(map[string]bool, len(items))
	for i := range items {
		if !ValidSection(items[i].Section) {
			return MonthPlan{}, fmt.Errorf("%w: %q", ErrInvalidSection, items[i].Section)
		}
		if seen[items[i].Section] {
			return MonthPlan{}, fmt.Errorf("duplicate section in plan: %q", items[i].Section)
		}
		seen[items[i].Section] = true
		if items[i].LimitAmount < 0 {
			return MonthPlan{}, fmt.Errorf("limit amount must not be negative")
		}
		items[i].ID = uuid.NewString()
		items[i].Month = month
	}
	if err := s.repo.ReplaceMonth(ctx, userId, month, items); err != nil {
		return MonthPlan{}, err
	}
	return s.GetMonthPlan(ctx, month)
}
