package transaction

import (
	"context"
	"testing"

	"github.com/finbook/finbook/internal/test_utils"
	"github.com/finbook/finbook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, Repo, int) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	return context.Background(), NewTransactionRepo(db), test_utils.TestUser.Id
}

func TestRepoImpl_StoreAndGetForMonth(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	err := repo.Store(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-05"), Description: "Potraviny", Amount: 2200, TagId: "tag-1", Section: "POTREBY",
	})
	require.NoError(t, err)
	err = repo.Store(ctx, userId, Transaction{
		ID: "tx-2", Kind: KindExpense, Date: date("2025-04-01"), Description: "Najom", Amount: 40000,
	})
	require.NoError(t, err)

	// when
	rows, err := repo.GetForMonth(ctx, userId, KindExpense, utils.MonthKey("2025-03"))

	// then
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "tx-1", rows[0].ID)
	assert.Equal(t, "Potraviny", rows[0].Description)
	assert.Equal(t, "tag-1", rows[0].TagId)
	assert.Equal(t, "POTREBY", rows[0].Section)
}

func TestRepoImpl_FindById(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindIncome, Date: date("2025-03-01"), Description: "Vyplata", Amount: 120000,
	}))

	// when
	found, err := repo.FindById(ctx, userId, "tx-1")

	// then
	assert.NoError(t, err)
	assert.Equal(t, "Vyplata", found.Description)

	// and a missing id is reported
	_, err = repo.FindById(ctx, userId, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepoImpl_Update(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-05"), Description: "A", Amount: 100,
	}))

	// when
	ok, err := repo.Update(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-07"), Description: "B", Amount: 250,
	})

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	found, err := repo.FindById(ctx, userId, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "B", found.Description)
	assert.Equal(t, date("2025-03-07"), found.Date)

	// another user must not be able to update the row
	ok, err = repo.Update(ctx, userId+1, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-07"), Description: "C", Amount: 1,
	})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRepoImpl_Delete(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-05"), Description: "A", Amount: 100,
	}))

	// when
	ok, err := repo.Delete(ctx, userId, "tx-1")

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.FindById(ctx, userId, "tx-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepoImpl_SumBySection(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-1", Kind: KindExpense, Date: date("2025-03-05"), Description: "Najom", Amount: 40000, Section: "POTREBY",
	}))
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-2", Kind: KindExpense, Date: date("2025-03-06"), Description: "Potraviny", Amount: 2200, Section: "POTREBY",
	}))
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-3", Kind: KindExpense, Date: date("2025-03-08"), Description: "Kino", Amount: 1800, Section: "VOLNY_CAS",
	}))
	require.NoError(t, repo.Store(ctx, userId, Transaction{
		ID: "tx-4", Kind: KindExpense, Date: date("2025-03-09"), Description: "No section", Amount: 500,
	}))

	// when
	sums, err := repo.SumBySection(ctx, userId, KindExpense, utils.MonthKey("2025-03"))

	// then
	assert.NoError(t, err)
	assert.Equal(t, "422.00", sums["POTREBY"].String())
	assert.Equal(t, "18.00", sums["VOLNY_CAS"].String())
	assert.Equal(t, "5.00", sums[""].String())
}
