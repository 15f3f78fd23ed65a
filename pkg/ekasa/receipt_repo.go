package ekasa

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound  = errors.New("receipt item not found")
	ErrDuplicate = errors.New("receipt already imported")
)

const dateFormat = "2006-01-02"

type Repo interface {
	// StoreReceipt inserts the receipt and all its items in one transaction.
	// Returns ErrDuplicate when the external uid was imported before.
	StoreReceipt(ctx context.Context, userId int, receipt Receipt) error
	GetItemsForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]ReceiptItem, error)
	SetItemCategory(ctx context.Context, userId int, itemId string, categoryId string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewReceiptRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) StoreReceipt(ctx context.Context, userId int, receipt Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipt (id, user_id, external_uid, issue_date, tag_id, total_amount, seller)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, userId, receipt.ExternalUid, receipt.IssueDate.Format(dateFormat),
		nullable(receipt.TagId), int64(receipt.TotalAmount), receipt.Seller,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		err := fmt.Errorf("could not store receipt: %w", err)
		log.Error(err)
		return err
	}

	for _, item := range receipt.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipt_item (id, receipt_id, name, quantity, unit_price, total_price, vat_rate, category_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, receipt.ID, item.Name, item.Quantity,
			int64(item.UnitPrice), int64(item.TotalPrice), item.VatRate, nullable(item.CategoryId),
		)
		if err != nil {
			err := fmt.Errorf("could not store receipt item: %w", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit receipt: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetItemsForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]ReceiptItem, error) {
	start, end := month.Bounds()
	query := `SELECT i.id, i.receipt_id, i.name, i.quantity, i.unit_price, i.total_price, i.vat_rate, i.category_id
				FROM receipt_item i JOIN receipt r ON r.id = i.receipt_id
				WHERE r.user_id = ? AND r.issue_date >= ? AND r.issue_date < ?
				ORDER BY r.issue_date, i.name`
	rows, err := r.db.QueryContext(ctx, query, userId, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query receipt items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []ReceiptItem
	for rows.Next() {
		var item ReceiptItem
		var unitPrice, totalPrice int64
		var vatRate sql.NullInt64
		var categoryId sql.NullString
		err := rows.Scan(&item.ID, &item.ReceiptId, &item.Name, &item.Quantity,
			&unitPrice, &totalPrice, &vatRate, &categoryId)
		if err != nil {
			err := fmt.Errorf("could not scan receipt item: %w", err)
			log.Error(err)
			return nil, err
		}
		item.UnitPrice = money.Cents(unitPrice)
		item.TotalPrice = money.Cents(totalPrice)
		item.VatRate = int(vatRate.Int64)
		item.CategoryId = categoryId.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r *RepoImpl) SetItemCategory(ctx context.Context, userId int, itemId string, categoryId string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE receipt_item SET category_id = ?
			WHERE id = ? AND receipt_id IN (SELECT id FROM receipt WHERE user_id = ?)`,
		categoryId, itemId, userId,
	)
	if err != nil {
		err := fmt.Errorf("could not set item category: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
