package comparison

import (
	"testing"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window2025() []utils.MonthKey {
	return Window("2025-03")
}

func TestWindow(t *testing.T) {
	// when
	window := window2025()

	// then
	require.Len(t, window, 12)
	assert.Equal(t, utils.MonthKey("2024-04"), window[0])
	assert.Equal(t, utils.MonthKey("2025-03"), window[11])
}

func TestStep(t *testing.T) {
	t.Run("should move a panel one month", func(t *testing.T) {
		sel := Selection{Left: "2025-01", Right: "2025-03"}

		// when
		stepped := Step(window2025(), sel, PanelLeft, 1)

		// then
		assert.Equal(t, Selection{Left: "2025-02", Right: "2025-03"}, stepped)
	})

	t.Run("should clamp at the oldest month", func(t *testing.T) {
		sel := Selection{Left: "2024-04", Right: "2025-03"}

		// when
		stepped := Step(window2025(), sel, PanelLeft, -1)

		// then
		assert.Equal(t, sel, stepped)
	})

	t.Run("should clamp at the newest month", func(t *testing.T) {
		sel := Selection{Left: "2025-01", Right: "2025-03"}

		// when
		stepped := Step(window2025(), sel, PanelRight, 1)

		// then
		assert.Equal(t, sel, stepped)
	})

	t.Run("should push the other panel on collision", func(t *testing.T) {
		sel := Selection{Left: "2025-01", Right: "2025-02"}

		// when
		stepped := Step(window2025(), sel, PanelLeft, 1)

		// then
		assert.Equal(t, Selection{Left: "2025-02", Right: "2025-03"}, stepped)
	})

	t.Run("should not move when the pushed panel has no room", func(t *testing.T) {
		sel := Selection{Left: "2025-02", Right: "2025-03"}

		// when
		stepped := Step(window2025(), sel, PanelLeft, 1)

		// then
		assert.Equal(t, sel, stepped)
	})
}

func TestClamp(t *testing.T) {
	t.Run("should default empty months to the newest entries", func(t *testing.T) {
		// when
		sel := Clamp(window2025(), Selection{})

		// then
		assert.Equal(t, Selection{Left: "2024-04", Right: "2025-03"}, sel)
	})

	t.Run("should pull out-of-window months inside", func(t *testing.T) {
		// when
		sel := Clamp(window2025(), Selection{Left: "2020-01", Right: "2030-01"})

		// then
		assert.Equal(t, Selection{Left: "2024-04", Right: "2025-03"}, sel)
	})

	t.Run("should separate colliding panels", func(t *testing.T) {
		// when
		sel := Clamp(window2025(), Selection{Left: "2025-03", Right: "2025-03"})

		// then
		assert.NotEqual(t, sel.Left, sel.Right)
	})
}

func TestClassifyTrend(t *testing.T) {
	// totals are cents
	assert.Equal(t, TrendUp, ClassifyTrend(10000, 9000))
	assert.Equal(t, TrendDown, ClassifyTrend(9000, 10000))
	assert.Equal(t, TrendFlat, ClassifyTrend(10000, 10050))
	assert.Equal(t, TrendFlat, ClassifyTrend(10000, 10000))
	// exactly at the threshold stays flat
	assert.Equal(t, TrendFlat, ClassifyTrend(10100, 10000))
}

func TestGroupBySection(t *testing.T) {
	rows := []transaction.Transaction{
		{Section: "POTREBY", Amount: 1000},
		{Section: "POTREBY", Amount: 500},
		{Section: "SPORENIE", Amount: 2000},
		{Amount: 700},
	}

	// when
	groups := GroupBySection(rows)

	// then
	require.Len(t, groups, 2)
	assert.EqualValues(t, 1500, groups["POTREBY"])
	assert.EqualValues(t, 2000, groups["SPORENIE"])
}
