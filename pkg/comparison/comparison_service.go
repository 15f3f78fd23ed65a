package comparison

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finbook/finbook/internal/cache"
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
)

// Rows is the slice of the transaction repository the aggregator reads from.
type Rows interface {
	GetForMonth(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) ([]transaction.Transaction, error)
}

type Panel struct {
	Month  utils.MonthKey
	Rows   []transaction.Transaction
	Total  money.Cents
	Groups map[string]money.Cents
}

type Result struct {
	Window []utils.MonthKey
	Left   Panel
	Right  Panel
	Trend  Trend
}

type Service interface {
	// Compare loads both panels for the lens. Out-of-window months are
	// clamped, colliding panels are separated.
	Compare(ctx context.Context, left, right utils.MonthKey, lens Lens) (Result, error)
}

type ServiceImpl struct {
	rows  Rows
	clock utils.Clock
	cache *cache.LRU[Panel]
}

func NewComparisonService(rows Rows, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		rows:  rows,
		clock: clock,
		// a month's rows are treated as immutable once loaded
		cache: cache.NewLRU[Panel](64, 15*time.Minute),
	}
}

func (s *ServiceImpl) Compare(ctx context.Context, left, right utils.MonthKey, lens Lens) (Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !lens.Valid() {
		return Result{}, fmt.Errorf("unknown comparison lens: %q", lens)
	}

	window := Window(utils.MonthKeyOf(s.clock.Now()))
	sel := Clamp(window, Selection{Left: left, Right: right})

	result := Result{Window: window}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		panel, err := s.loadPanel(groupCtx, userId, lens, sel.Left)
		if err != nil {
			return fmt.Errorf("left panel: %w", err)
		}
		result.Left = panel
		return nil
	})
	group.Go(func() error {
		panel, err := s.loadPanel(groupCtx, userId, lens, sel.Right)
		if err != nil {
			return fmt.Errorf("right panel: %w", err)
		}
		result.Right = panel
		return nil
	})
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	result.Trend = ClassifyTrend(result.Left.Total, result.Right.Total)
	return result, nil
}

func (s *ServiceImpl) loadPanel(ctx context.Context, userId int, lens Lens, month utils.MonthKey) (Panel, error) {
	key := fmt.Sprintf("%d|%s|%s", userId, lens, month)
	if panel, ok := s.cache.Get(key); ok {
		return panel, nil
	}

	rows, err := s.rows.GetForMonth(ctx, userId, lens.kind(), month)
	if err != nil {
		return Panel{}, err
	}
	if lens == LensNeeds {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Section != "" {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	panel := Panel{Month: month, Rows: rows, Groups: GroupBySection(rows)}
	for _, row := range rows {
		panel.Total += row.Amount
	}
	s.cache.Set(key, panel)
	return panel, nil
}
