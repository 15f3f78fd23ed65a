package goal

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

var repoStub = NewStubGoalRepo()

type stubSectionSums struct {
	byMonth map[utils.MonthKey]map[string]money.Cents
	queries []utils.MonthKey
}

func (s *stubSectionSums) SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error) {
	s.queries = append(s.queries, month)
	return s.byMonth[month], nil
}

var sumsStub = &stubSectionSums{}

var service Service

func setup(t *testing.T) func() {
	sumsStub.byMonth = map[utils.MonthKey]map[string]money.Cents{}
	sumsStub.queries = nil
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	service = NewGoalService(repoStub, sumsStub, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a goal with a generated id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Goal{
			Name:         "Rezerva",
			Type:         TypeYearly,
			TargetAmount: 500000,
			Section:      "SPORENIE",
		})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("should reject an unknown goal type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Goal{Name: "Rezerva", Type: "weekly", TargetAmount: 1000})

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Goal{Type: TypeMonthly, TargetAmount: 1000})

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should attach the current month's spend to monthly goals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.Create(ctx, Goal{
			Name:         "Jedlo pod kontrolou",
			Type:         TypeMonthly,
			TargetAmount: 30000,
			Section:      "POTREBY",
		})
		require.NoError(t, err)
		sumsStub.byMonth["2025-03"] = map[string]money.Cents{"POTREBY": 21550}

		// when
		goals, err := service.List(ctx, "")

		// then
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, money.Cents(21550), goals[0].Actual)
	})

	t.Run("should attach year-to-date totals to yearly goals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.Create(ctx, Goal{
			Name:         "Rezerva",
			Type:         TypeYearly,
			TargetAmount: 500000,
			Section:      "SPORENIE",
		})
		require.NoError(t, err)
		sumsStub.byMonth["2025-01"] = map[string]money.Cents{"SPORENIE": 10000}
		sumsStub.byMonth["2025-02"] = map[string]money.Cents{"SPORENIE": 15000}
		sumsStub.byMonth["2025-03"] = map[string]money.Cents{"SPORENIE": 5000}

		// when
		goals, err := service.List(ctx, "")

		// then
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, money.Cents(30000), goals[0].ProgressYTD)
		// only January through the current month
		assert.Len(t, sumsStub.queries, 3)
	})

	t.Run("should filter by section", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.Create(ctx, Goal{Name: "A", Type: TypeMonthly, TargetAmount: 100, Section: "POTREBY"})
		require.NoError(t, err)
		_, err = service.Create(ctx, Goal{Name: "B", Type: TypeMonthly, TargetAmount: 100, Section: "SPORENIE"})
		require.NoError(t, err)

		// when
		goals, err := service.List(ctx, "SPORENIE")

		// then
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "B", goals[0].Name)
	})

	t.Run("should not query sums for goals without a section", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.Create(ctx, Goal{Name: "Volny ciel", Type: TypeMonthly, TargetAmount: 100})
		require.NoError(t, err)

		// when
		_, err = service.List(ctx, "")

		// then
		require.NoError(t, err)
		assert.Empty(t, sumsStub.queries)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should update an existing goal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		created, err := service.Create(ctx, Goal{Name: "Rezerva", Type: TypeYearly, TargetAmount: 1000})
		require.NoError(t, err)

		// when
		created.IsDone = true
		updated, err := service.Update(ctx, created)

		// then
		require.NoError(t, err)
		assert.True(t, updated.IsDone)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Update(ctx, Goal{ID: "missing", Name: "X", Type: TypeMonthly})

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
