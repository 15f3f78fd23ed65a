package budget

import (
	"context"
	"testing"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

var repoStub = NewStubBudgetRepo()

type stubSectionSums struct {
	sums map[string]money.Cents
}

func (s *stubSectionSums) SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error) {
	return s.sums, nil
}

var sumsStub = &stubSectionSums{}

var service Service

func setup(t *testing.T) func() {
	sumsStub.sums = map[string]money.Cents{}
	service = NewBudgetService(repoStub, sumsStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_ReplaceMonthPlan(t *testing.T) {
	t.Run("should store a new month plan and return it with totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		plan, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "POTREBY", LimitAmount: 80000, PercentTarget: 50},
			{Section: "SPORENIE", LimitAmount: 20000, PercentTarget: 10},
		})

		// then
		require.NoError(t, err)
		assert.Len(t, plan.Items, 2)
		assert.Equal(t, money.Cents(100000), plan.TotalLimit)
		for _, item := range plan.Items {
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, utils.MonthKey("2025-03"), item.Month)
		}
	})

	t.Run("should replace the previous plan wholesale", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "POTREBY", LimitAmount: 80000},
			{Section: "SPORENIE", LimitAmount: 20000},
		})
		require.NoError(t, err)

		// when
		plan, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "VOLNY_CAS", LimitAmount: 15000},
		})

		// then
		require.NoError(t, err)
		assert.Len(t, plan.Items, 1)
		assert.Equal(t, "VOLNY_CAS", plan.Items[0].Section)
	})

	t.Run("should reject an unknown section", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "GAMBLING", LimitAmount: 5000},
		})

		// then
		assert.ErrorIs(t, err, ErrInvalidSection)
	})

	t.Run("should reject duplicate sections", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "POTREBY", LimitAmount: 5000},
			{Section: "POTREBY", LimitAmount: 6000},
		})

		// then
		assert.ErrorContains(t, err, "duplicate section")
	})

	t.Run("should reject a negative limit", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "POTREBY", LimitAmount: -100},
		})

		// then
		assert.ErrorContains(t, err, "negative")
	})
}

func TestServiceImpl_GetMonthPlan(t *testing.T) {
	t.Run("should attach spent amounts from the month's expenses", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.ReplaceMonthPlan(ctx, "2025-03", []Item{
			{Section: "POTREBY", LimitAmount: 80000},
			{Section: "SPORENIE", LimitAmount: 20000},
		})
		require.NoError(t, err)
		sumsStub.sums = map[string]money.Cents{"POTREBY": 45120}

		// when
		plan, err := service.GetMonthPlan(ctx, "2025-03")

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(45120), plan.TotalSpent)
		for _, item := range plan.Items {
			if item.Section == "POTREBY" {
				assert.Equal(t, money.Cents(45120), item.Spent)
			} else {
				assert.Equal(t, money.Cents(0), item.Spent)
			}
		}
	})

	t.Run("should return an empty plan for a month with no budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		plan, err := service.GetMonthPlan(ctx, "2025-07")

		// then
		require.NoError(t, err)
		assert.Empty(t, plan.Items)
		assert.Equal(t, money.Cents(0), plan.TotalLimit)
	})
}
