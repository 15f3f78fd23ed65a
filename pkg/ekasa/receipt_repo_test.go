package ekasa

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/test_utils"
	"github.com/finbook/finbook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, Repo, int) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	return context.Background(), NewReceiptRepo(db), test_utils.TestUser.Id
}

func storedReceipt(id string, externalUid string, issueDate time.Time) Receipt {
	return Receipt{
		ID:          id,
		ExternalUid: externalUid,
		IssueDate:   issueDate,
		TotalAmount: 1247,
		Seller:      "TERNO",
		Items: []ReceiptItem{
			{ID: id + "-i1", ReceiptId: id, Name: "Rozky", Quantity: 10000, UnitPrice: 19, TotalPrice: 190, VatRate: 20},
			{ID: id + "-i2", ReceiptId: id, Name: "Maslo", Quantity: 1000, UnitPrice: 249, TotalPrice: 249, VatRate: 20},
		},
	}
}

func TestRepoImpl_StoreReceipt(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	err := repo.StoreReceipt(ctx, userId, storedReceipt("r-1", "O-1234567890", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))

	// then
	assert.NoError(t, err)
	items, err := repo.GetItemsForMonth(ctx, userId, utils.MonthKey("2025-03"))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRepoImpl_StoreReceipt_Duplicate(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.StoreReceipt(ctx, userId, storedReceipt("r-1", "O-1234567890", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))))

	// when
	err := repo.StoreReceipt(ctx, userId, storedReceipt("r-2", "O-1234567890", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))

	// then
	assert.ErrorIs(t, err, ErrDuplicate)

	// and the first import stays intact
	items, err := repo.GetItemsForMonth(ctx, userId, utils.MonthKey("2025-03"))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRepoImpl_GetItemsForMonth(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.StoreReceipt(ctx, userId, storedReceipt("r-1", "O-1234567890", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.StoreReceipt(ctx, userId, storedReceipt("r-2", "O-0987654321", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))))

	// when
	items, err := repo.GetItemsForMonth(ctx, userId, utils.MonthKey("2025-02"))

	// then
	assert.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "r-2", item.ReceiptId)
	}
}

func TestRepoImpl_SetItemCategory(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.StoreReceipt(ctx, userId, storedReceipt("r-1", "O-1234567890", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))))

	// when
	updated, err := repo.SetItemCategory(ctx, userId, "r-1-i1", "cat-jedlo")

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	items, err := repo.GetItemsForMonth(ctx, userId, utils.MonthKey("2025-03"))
	require.NoError(t, err)
	for _, item := range items {
		if item.ID == "r-1-i1" {
			assert.Equal(t, "cat-jedlo", item.CategoryId)
			assert.Equal(t, money.Cents(190), item.TotalPrice)
		}
	}

	// and items of other users are untouched
	updated, err = repo.SetItemCategory(ctx, 999, "r-1-i2", "cat-jedlo")
	assert.NoError(t, err)
	assert.False(t, updated)
}
