package dashboard

import (
	"context"
	"testing"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/test_utils"
	"github.com/finbook/finbook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoImpl_DonutForMonth(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	userId := test_utils.TestUser.Id
	repo := NewDashboardRepo(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO category (id, user_id, name) VALUES ('cat-1', ?, 'Jedlo')`, userId)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO receipt (id, user_id, external_uid, issue_date, total_amount) VALUES ('r-1', ?, 'O-1', '2025-03-14', 1000)`, userId)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO receipt_item (id, receipt_id, name, total_price, category_id) VALUES ('i-1', 'r-1', 'Maslo', 750, 'cat-1')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO receipt_item (id, receipt_id, name, total_price) VALUES ('i-2', 'r-1', 'Zvysok', 250)`)
	require.NoError(t, err)

	// when
	slices, err := repo.DonutForMonth(ctx, userId, utils.MonthKey("2025-03"))

	// then
	assert.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "Jedlo", slices[0].Category)
	assert.Equal(t, money.Cents(750), slices[0].Amount)
	assert.Equal(t, "Uncategorized", slices[1].Category)
	assert.Equal(t, money.Cents(250), slices[1].Amount)

	// and months without receipts stay empty
	empty, err := repo.DonutForMonth(ctx, userId, utils.MonthKey("2025-04"))
	assert.NoError(t, err)
	assert.Empty(t, empty)
}
