package importqr

import (
	"context"
	"encoding/json"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Preview parses the payload into reviewable rows. It writes nothing.
	Preview(ctx context.Context, payload json.RawMessage) []Row
	// Confirm creates one expense per row. Rows that cannot be converted or
	// stored are skipped; the count of created transactions is returned.
	Confirm(ctx context.Context, rows []Row) (int, error)
}

type ServiceImpl struct {
	transactions transaction.Service
	clock        utils.Clock
}

func NewImportService(transactions transaction.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{transactions: transactions, clock: clock}
}

func (s *ServiceImpl) Preview(ctx context.Context, payload json.RawMessage) []Row {
	return Parse(payload)
}

func (s *ServiceImpl) Confirm(ctx context.Context, rows []Row) (int, error) {
	created := 0
	for _, row := range rows {
		tx, err := s.toTransaction(row)
		if err != nil {
			log.Debugf("skipping import row %q: %v", row.Item, err)
			continue
		}
		if _, err := s.transactions.Create(ctx, tx); err != nil {
			log.Warnf("could not create transaction from import row %q: %v", row.Item, err)
			continue
		}
		created++
	}
	return created, nil
}

func (s *ServiceImpl) toTransaction(row Row) (transaction.Transaction, error) {
	price, err := money.Parse(row.Price)
	if err != nil {
		return transaction.Transaction{}, err
	}
	qnt, err := money.Parse(row.Qnt)
	if err != nil {
		return transaction.Transaction{}, err
	}
	// both factors are in hundredths, round half up back to cents
	amount := money.Cents((int64(price)*int64(qnt) + 50) / 100)

	date, ok := ParseDate(row.Date)
	if !ok {
		date = s.clock.Now()
	}
	description := row.Item
	if description == "" {
		description = row.Category
	}
	return transaction.Transaction{
		Kind:        transaction.KindExpense,
		Date:        date,
		Description: description,
		Amount:      amount,
		Source:      "qr",
	}, nil
}
