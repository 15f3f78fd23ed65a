package category

import (
	"context"
	"testing"

	"github.com/finbook/finbook/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, Repo, int) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	return context.Background(), NewCategoryRepo(db), test_utils.TestUser.Id
}

func TestRepoImpl_GetAll_Ordering(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-1", Name: "Zdravie", Count: 9}))
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-2", Name: "Jedlo", IsPinned: true, Count: 2}))
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-3", Name: "Doprava", Count: 30}))
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-4", Name: "Byvanie", IsPinned: true, Count: 7}))

	// when
	categories, err := repo.GetAll(ctx, userId)

	// then: pinned before unpinned, count desc within each group
	assert.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Byvanie", categories[0].Name)
	assert.Equal(t, "Jedlo", categories[1].Name)
	assert.Equal(t, "Doprava", categories[2].Name)
	assert.Equal(t, "Zdravie", categories[3].Name)
}

func TestRepoImpl_IncrementCount(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-1", Name: "Jedlo"}))

	// when
	require.NoError(t, repo.IncrementCount(ctx, "c-1"))
	require.NoError(t, repo.IncrementCount(ctx, "c-1"))

	// then
	categories, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, categories[0].Count)
}

func TestRepoImpl_UpdateAndDelete(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, userId, Category{ID: "c-1", Name: "Jedlo"}))

	// when
	ok, err := repo.Update(ctx, userId, Category{ID: "c-1", Name: "Potraviny", IsPinned: true})

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	categories, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Potraviny", categories[0].Name)
	assert.True(t, categories[0].IsPinned)

	// and delete removes it
	ok, err = repo.Delete(ctx, userId, "c-1")
	assert.NoError(t, err)
	assert.True(t, ok)
	categories, err = repo.GetAll(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
