package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("goal not found")

type Repo interface {
	Store(ctx context.Context, userId int, goal Goal) error
	// GetAll returns the user's goals, optionally filtered by section when
	// section is not empty.
	GetAll(ctx context.Context, userId int, section string) ([]Goal, error)
	FindById(ctx context.Context, userId int, id string) (Goal, error)
	Update(ctx context.Context, userId int, goal Goal) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, goal Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goal (id, user_id, name, type, target_amount, section, month_from, month_to, is_done)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, userId, goal.Name, string(goal.Type), int64(goal.TargetAmount),
		goal.Section, string(goal.MonthFrom), string(goal.MonthTo), goal.IsDone,
	)
	if err != nil {
		err := fmt.Errorf("could not store goal: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int, section string) ([]Goal, error) {
	query := `SELECT id, name, type, target_amount, section, month_from, month_to, is_done
				FROM goal WHERE user_id = ?`
	args := []any{userId}
	if section != "" {
		query += " AND section = ?"
		args = append(args, section)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return goals, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id string) (Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, target_amount, section, month_from, month_to, is_done
			FROM goal WHERE user_id = ? AND id = ?`,
		userId, id,
	)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		log.Error(err)
		return Goal{}, err
	}
	return goal, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, goal Goal) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE goal SET name = ?, type = ?, target_amount = ?, section = ?, month_from = ?, month_to = ?, is_done = ?
			WHERE user_id = ? AND id = ?`,
		goal.Name, string(goal.Type), int64(goal.TargetAmount), goal.Section,
		string(goal.MonthFrom), string(goal.MonthTo), goal.IsDone,
		userId, goal.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update goal: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (Goal, error) {
	var goal Goal
	var goalType, section, monthFrom, monthTo string
	var targetAmount int64
	err := row.Scan(&goal.ID, &goal.Name, &goalType, &targetAmount, &section, &monthFrom, &monthTo, &goal.IsDone)
	if err != nil {
		return Goal{}, err
	}
	goal.Type = Type(goalType)
	goal.TargetAmount = money.Cents(targetAmount)
	goal.Section = section
	goal.MonthFrom = utils.MonthKey(monthFrom)
	goal.MonthTo = utils.MonthKey(monthTo)
	return goal, nil
}
