package budget

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	GetForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]Item, error)
	// ReplaceMonth swaps the whole month's item set in one transaction.
	ReplaceMonth(ctx context.Context, userId int, month utils.MonthKey, items []Item) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]Item, error) {
	query := `SELECT id, month, section, limit_amount, percent_target FROM budget_item
				WHERE user_id = ? AND month = ? ORDER BY section`
	rows, err := r.db.QueryContext(ctx, query, userId, string(month))
	if err != nil {
		err := fmt.Errorf("could not query budget items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var monthString string
		var limitAmount int64
		if err := rows.Scan(&item.ID, &monthString, &item.Section, &limitAmount, &item.PercentTarget); err != nil {
			err := fmt.Errorf("could not scan budget item: %w", err)
			log.Error(err)
			return nil, err
		}
		item.Month = utils.MonthKey(monthString)
		item.LimitAmount = money.Cents(limitAmount)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r *RepoImpl) ReplaceMonth(ctx context.Context, userId int, month utils.MonthKey, items []Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM budget_item WHERE user_id = ? AND month = ?", userId, string(month)); err != nil {
		err := fmt.Errorf("could not clear month budget: %w", err)
		log.Error(err)
		return err
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO budget_item (id, user_id, month, section, limit_amount, percent_target) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, userId, string(month), item.Section, int64(item.LimitAmount), item.PercentTarget,
		)
		if err != nil {
			err := fmt.Errorf("could not store budget item: %w", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit month budget: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
