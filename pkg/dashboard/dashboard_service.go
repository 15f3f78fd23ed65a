package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
)

// Sums provides per-section monthly totals. Implemented by the transaction
// repository.
type Sums interface {
	SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error)
}

type Service interface {
	GetSummary(ctx context.Context, month utils.MonthKey) (Summary, error)
}

type ServiceImpl struct {
	sums  Sums
	repo  Repo
	clock utils.Clock
}

func NewDashboardService(sums Sums, repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{sums: sums, repo: repo, clock: clock}
}

func (s *ServiceImpl) GetSummary(ctx context.Context, month utils.MonthKey) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if month == "" {
		month = utils.MonthKeyOf(s.clock.Now())
	}

	summary := Summary{Month: month}
	summary.TotalIncomes, err = s.monthTotal(ctx, userId, transaction.KindIncome, month)
	if err != nil {
		return Summary{}, err
	}
	summary.TotalExpenses, err = s.monthTotal(ctx, userId, transaction.KindExpense, month)
	if err != nil {
		return Summary{}, err
	}
	summary.Balance = summary.TotalIncomes - summary.TotalExpenses

	donut, err := s.repo.DonutForMonth(ctx, userId, month)
	if err != nil {
		return Summary{}, err
	}
	summary.Donut = withPercentages(donut)

	if err := s.attachTrend(ctx, userId, &summary); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func (s *ServiceImpl) monthTotal(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (money.Cents, error) {
	sums, err := s.sums.SumBySection(ctx, userId, kind, month)
	if err != nil {
		return 0, err
	}
	var total money.Cents
	for _, amount := range sums {
		total += amount
	}
	return total, nil
}

// attachTrend fills the trailing months series ending at the summary month.
func (s *ServiceImpl) attachTrend(ctx context.Context, userId int, summary *Summary) error {
	summary.Months = make([]utils.MonthKey, trendMonths)
	summary.SeriesIncomes = make([]money.Cents, trendMonths)
	summary.SeriesExpenses = make([]money.Cents, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := summary.Month.Add(i - trendMonths + 1)
		summary.Months[i] = month
		if month == summary.Month {
			summary.SeriesIncomes[i] = summary.TotalIncomes
			summary.SeriesExpenses[i] = summary.TotalExpenses
			continue
		}
		incomes, err := s.monthTotal(ctx, userId, transaction.KindIncome, month)
		if err != nil {
			return err
		}
		expenses, err := s.monthTotal(ctx, userId, transaction.KindExpense, month)
		if err != nil {
			return err
		}
		summary.SeriesIncomes[i] = incomes
		summary.SeriesExpenses[i] = expenses
	}
	return nil
}

// withPercentages computes each slice's share of the donut total, rounded to
// one decimal place.
func withPercentages(slices []DonutSlice) []DonutSlice {
	var total money.Cents
	for _, slice := range slices {
		total += slice.Amount
	}
	if total == 0 {
		return slices
	}
	for i := range slices {
		share := float64(slices[i].Amount) / float64(total) * 100.0
		slices[i].Percentage = math.Round(share*10) / 10
	}
	return slices
}
