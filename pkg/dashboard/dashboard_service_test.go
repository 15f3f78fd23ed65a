package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

type stubSums struct {
	data map[string]map[string]money.Cents // kind|month -> section sums
}

func (s *stubSums) SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error) {
	return s.data[string(kind)+"|"+string(month)], nil
}

type stubDonutRepo struct {
	slices []DonutSlice
}

func (s *stubDonutRepo) DonutForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]DonutSlice, error) {
	return s.slices, nil
}

func setupService() (*stubSums, *stubDonutRepo, Service) {
	sums := &stubSums{data: map[string]map[string]money.Cents{}}
	repo := &stubDonutRepo{}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	return sums, repo, NewDashboardService(sums, repo, clock)
}

func TestServiceImpl_GetSummary(t *testing.T) {
	t.Run("should total incomes and expenses and compute the balance", func(t *testing.T) {
		sums, _, service := setupService()
		sums.data["income|2025-03"] = map[string]money.Cents{"": 120000}
		sums.data["expense|2025-03"] = map[string]money.Cents{"POTREBY": 45000, "": 5000}

		// when
		summary, err := service.GetSummary(ctx, "2025-03")

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(120000), summary.TotalIncomes)
		assert.Equal(t, money.Cents(50000), summary.TotalExpenses)
		assert.Equal(t, money.Cents(70000), summary.Balance)
	})

	t.Run("should default to the current month", func(t *testing.T) {
		_, _, service := setupService()

		// when
		summary, err := service.GetSummary(ctx, "")

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.MonthKey("2025-03"), summary.Month)
	})

	t.Run("should compute donut percentage shares", func(t *testing.T) {
		_, repo, service := setupService()
		repo.slices = []DonutSlice{
			{Category: "Jedlo", Amount: 7500},
			{Category: "Uncategorized", Amount: 2500},
		}

		// when
		summary, err := service.GetSummary(ctx, "2025-03")

		// then
		require.NoError(t, err)
		require.Len(t, summary.Donut, 2)
		assert.Equal(t, 75.0, summary.Donut[0].Percentage)
		assert.Equal(t, 25.0, summary.Donut[1].Percentage)
	})

	t.Run("should keep percentages zero for an empty month", func(t *testing.T) {
		_, repo, service := setupService()
		repo.slices = []DonutSlice{{Category: "Jedlo", Amount: 0}}

		// when
		summary, err := service.GetSummary(ctx, "2025-03")

		// then
		require.NoError(t, err)
		assert.Zero(t, summary.Donut[0].Percentage)
	})

	t.Run("should build a six month trend ending at the month", func(t *testing.T) {
		sums, _, service := setupService()
		sums.data["expense|2025-03"] = map[string]money.Cents{"": 5000}
		sums.data["expense|2025-01"] = map[string]money.Cents{"": 3000}

		// when
		summary, err := service.GetSummary(ctx, "2025-03")

		// then
		require.NoError(t, err)
		require.Len(t, summary.Months, 6)
		assert.Equal(t, utils.MonthKey("2024-10"), summary.Months[0])
		assert.Equal(t, utils.MonthKey("2025-03"), summary.Months[5])
		assert.Equal(t, money.Cents(3000), summary.SeriesExpenses[3])
		assert.Equal(t, money.Cents(5000), summary.SeriesExpenses[5])
	})
}
