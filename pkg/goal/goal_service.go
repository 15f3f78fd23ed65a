package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
)

var ErrValidation = errors.New("goal validation failed")

// SectionSums provides per-section expense totals for a month. Implemented by
// the transaction repository.
type SectionSums interface {
	SumBySection(ctx context.Context, userId int, kind transaction.Kind, month utils.MonthKey) (map[string]money.Cents, error)
}

type Service interface {
	Create(ctx context.Context, goal Goal) (Goal, error)
	// List returns goals with progress attached: monthly goals carry the
	// current month's section expenses in Actual, yearly goals carry the
	// year-to-date section total in ProgressYTD.
	List(ctx context.Context, section string) ([]Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
}

type ServiceImpl struct {
	repo  Repo
	sums  SectionSums
	clock utils.Clock
}

func NewGoalService(repo Repo, sums SectionSums, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, sums: sums, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(goal); err != nil {
		return Goal{}, err
	}
	goal.ID = uuid.NewString()
	if err := s.repo.Store(ctx, userId, goal); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

func (s *ServiceImpl) List(ctx context.Context, section string) ([]Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	goals, err := s.repo.GetAll(ctx, userId, section)
	if err != nil {
		return nil, err
	}

	currentMonth := utils.MonthKeyOf(s.clock.Now())
	var monthSums map[string]money.Cents
	var ytdSums map[string]money.Cents

	for i := range goals {
		if goals[i].Section == "" {
			continue
		}
		switch goals[i].Type {
		case TypeMonthly:
			if monthSums == nil {
				monthSums, err = s.sums.SumBySection(ctx, userId, transaction.KindExpense, currentMonth)
				if err != nil {
					return nil, err
				}
			}
			goals[i].Actual = monthSums[goals[i].Section]
		case TypeYearly:
			if ytdSums == nil {
				ytdSums, err = s.yearToDateSums(ctx, userId, currentMonth)
				if err != nil {
					return nil, err
				}
			}
			goals[i].ProgressYTD = ytdSums[goals[i].Section]
		}
	}
	return goals, nil
}

func (s *ServiceImpl) Update(ctx context.Context, goal Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(goal); err != nil {
		return Goal{}, err
	}
	updated, err := s.repo.Update(ctx, userId, goal)
	if err != nil {
		return Goal{}, err
	}
	if !updated {
		return Goal{}, ErrNotFound
	}
	return goal, nil
}

// yearToDateSums accumulates per-section expense totals from January of the
// current year through the current month.
func (s *ServiceImpl) yearToDateSums(ctx context.Context, userId int, currentMonth utils.MonthKey) (map[string]money.Cents, error) {
	year := s.clock.Now().Year()
	totals := map[string]money.Cents{}
	month := utils.MonthKey(fmt.Sprintf("%04d-01", year))
	for {
		sums, err := s.sums.SumBySection(ctx, userId, transaction.KindExpense, month)
		if err != nil {
			return nil, err
		}
		for section, amount := range sums {
			totals[section] += amount
		}
		if month == currentMonth {
			break
		}
		month = month.Add(1)
	}
	return totals, nil
}

func validate(goal Goal) error {
	if goal.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !goal.Type.Valid() {
		return fmt.Errorf("%w: unknown goal type %q", ErrValidation, goal.Type)
	}
	if goal.TargetAmount < 0 {
		return fmt.Errorf("%w: target amount must not be negative", ErrValidation)
	}
	return nil
}
