package dashboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

type Repo interface {
	// DonutForMonth sums the month's receipt items per category, largest
	// first. Items without a category land in the Uncategorized slice.
	DonutForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]DonutSlice, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) DonutForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]DonutSlice, error) {
	start, end := month.Bounds()
	query := `SELECT COALESCE(c.name, ?), COALESCE(SUM(i.total_price), 0)
				FROM receipt_item i
				JOIN receipt r ON r.id = i.receipt_id
				LEFT JOIN category c ON c.id = i.category_id
				WHERE r.user_id = ? AND r.issue_date >= ? AND r.issue_date < ?
				GROUP BY COALESCE(c.name, ?)
				ORDER BY SUM(i.total_price) DESC`
	rows, err := r.db.QueryContext(ctx, query,
		uncategorized, userId, start.Format(dateFormat), end.Format(dateFormat), uncategorized)
	if err != nil {
		err := fmt.Errorf("could not query donut data: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var slices []DonutSlice
	for rows.Next() {
		var slice DonutSlice
		var amount int64
		if err := rows.Scan(&slice.Category, &amount); err != nil {
			err := fmt.Errorf("could not scan donut slice: %w", err)
			log.Error(err)
			return nil, err
		}
		slice.Amount = money.Cents(amount)
		slices = append(slices, slice)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return slices, nil
}
