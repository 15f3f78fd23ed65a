package comparison

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

type countingRows struct {
	byMonth map[utils.MonthKey][]transaction.Transaction
	queries int
}

func (c *countingRows) GetForMonth(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) ([]transaction.Transaction, error) {
	c.queries++
	var rows []transaction.Transaction
	for _, row := range c.byMonth[month] {
		if row.Kind == kind {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func setupService() (*countingRows, Service) {
	rows := &countingRows{byMonth: map[utils.MonthKey][]transaction.Transaction{}}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	return rows, NewComparisonService(rows, clock)
}

func expense(month utils.MonthKey, amount money.Cents, section string) transaction.Transaction {
	start, _ := month.Bounds()
	return transaction.Transaction{
		Kind: transaction.KindExpense, Date: start.AddDate(0, 0, 4), Amount: amount, Section: section,
	}
}

func TestServiceImpl_Compare(t *testing.T) {
	t.Run("should total both panels and classify the trend", func(t *testing.T) {
		rows, service := setupService()
		rows.byMonth["2025-02"] = []transaction.Transaction{expense("2025-02", 10000, "POTREBY")}
		rows.byMonth["2025-03"] = []transaction.Transaction{expense("2025-03", 9000, "POTREBY")}

		// when
		result, err := service.Compare(ctx, "2025-02", "2025-03", LensExpenses)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(10000), result.Left.Total)
		assert.Equal(t, money.Cents(9000), result.Right.Total)
		assert.Equal(t, TrendUp, result.Trend)
		assert.Len(t, result.Window, 12)
	})

	t.Run("should serve repeated loads from the cache", func(t *testing.T) {
		rows, service := setupService()
		rows.byMonth["2025-02"] = []transaction.Transaction{expense("2025-02", 10000, "")}
		rows.byMonth["2025-03"] = []transaction.Transaction{expense("2025-03", 9000, "")}

		// when
		_, err := service.Compare(ctx, "2025-02", "2025-03", LensExpenses)
		require.NoError(t, err)
		first := rows.queries
		_, err = service.Compare(ctx, "2025-02", "2025-03", LensExpenses)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, first)
		assert.Equal(t, first, rows.queries)
	})

	t.Run("should cache per lens", func(t *testing.T) {
		rows, service := setupService()

		// when
		_, err := service.Compare(ctx, "2025-02", "2025-03", LensExpenses)
		require.NoError(t, err)
		_, err = service.Compare(ctx, "2025-02", "2025-03", LensIncomes)

		// then
		require.NoError(t, err)
		assert.Equal(t, 4, rows.queries)
	})

	t.Run("should clamp out-of-window months", func(t *testing.T) {
		rows, service := setupService()
		rows.byMonth["2024-04"] = []transaction.Transaction{expense("2024-04", 500, "")}

		// when
		result, err := service.Compare(ctx, "2019-01", "2025-03", LensExpenses)

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.MonthKey("2024-04"), result.Left.Month)
		assert.Equal(t, money.Cents(500), result.Left.Total)
	})

	t.Run("should drop unsectioned rows for the needs lens", func(t *testing.T) {
		rows, service := setupService()
		rows.byMonth["2025-03"] = []transaction.Transaction{
			expense("2025-03", 1000, "POTREBY"),
			expense("2025-03", 700, ""),
		}

		// when
		result, err := service.Compare(ctx, "2025-02", "2025-03", LensNeeds)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(1000), result.Right.Total)
		assert.Len(t, result.Right.Rows, 1)
	})

	t.Run("should reject an unknown lens", func(t *testing.T) {
		_, service := setupService()

		// when
		_, err := service.Compare(ctx, "2025-02", "2025-03", "magic")

		// then
		assert.Error(t, err)
	})
}
