package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("transaction not found")

const dateFormat = "2006-01-02"

type Repo interface {
	Store(ctx context.Context, userId int, tx Transaction) error
	GetForMonth(ctx context.Context, userId int, kind Kind, month utils.MonthKey) ([]Transaction, error)
	FindById(ctx context.Context, userId int, id string) (Transaction, error)
	Update(ctx context.Context, userId int, tx Transaction) (bool, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	SumBySection(ctx context.Context, userId int, kind Kind, month utils.MonthKey) (map[string]money.Cents, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, tx Transaction) error {
	query := `INSERT INTO transactions (id, user_id, kind, tx_date, description, amount, tag_id, section, source)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		userId,
		string(tx.Kind),
		tx.Date.Format(dateFormat),
		tx.Description,
		int64(tx.Amount),
		nullable(tx.TagId),
		nullable(tx.Section),
		nullable(tx.Source),
	)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetForMonth(ctx context.Context, userId int, kind Kind, month utils.MonthKey) ([]Transaction, error) {
	start, end := month.Bounds()
	query := `SELECT id, kind, tx_date, description, amount, tag_id, section, source
				FROM transactions
				WHERE user_id = ? AND kind = ? AND tx_date >= ? AND tx_date < ?
				ORDER BY tx_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userId, string(kind), start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id string) (Transaction, error) {
	query := `SELECT id, kind, tx_date, description, amount, tag_id, section, source
				FROM transactions WHERE user_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, userId, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	return tx, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, tx Transaction) (bool, error) {
	query := `UPDATE transactions SET tx_date = ?, description = ?, amount = ?, tag_id = ?, section = ?
				WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		tx.Date.Format(dateFormat),
		tx.Description,
		int64(tx.Amount),
		nullable(tx.TagId),
		nullable(tx.Section),
		tx.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	query := "DELETE FROM transactions WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

// SumBySection aggregates a month's totals per section. Rows without a section
// are summed under the empty key.
func (r *RepoImpl) SumBySection(ctx context.Context, userId int, kind Kind, month utils.MonthKey) (map[string]money.Cents, error) {
	start, end := month.Bounds()
	query := `SELECT COALESCE(section, ''), COALESCE(SUM(amount), 0)
				FROM transactions
				WHERE user_id = ? AND kind = ? AND tx_date >= ? AND tx_date < ?
				GROUP BY COALESCE(section, '')`
	rows, err := r.db.QueryContext(ctx, query, userId, string(kind), start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query section sums: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]money.Cents)
	for rows.Next() {
		var section string
		var total int64
		if err := rows.Scan(&section, &total); err != nil {
			err := fmt.Errorf("could not scan section sum: %w", err)
			log.Error(err)
			return nil, err
		}
		sums[section] = money.Cents(total)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return sums, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var tx Transaction
	var kind, dateString string
	var amount int64
	var tagId, section, source sql.NullString
	if err := row.Scan(&tx.ID, &kind, &dateString, &tx.Description, &amount, &tagId, &section, &source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, err
		}
		err := fmt.Errorf("could not scan transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	date, err := time.Parse(dateFormat, dateString)
	if err != nil {
		err := fmt.Errorf("could not parse transaction date: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	tx.Kind = Kind(kind)
	tx.Date = date
	tx.Amount = money.Cents(amount)
	tx.TagId = tagId.String
	tx.Section = section.String
	tx.Source = source.String
	return tx, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
