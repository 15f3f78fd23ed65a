package transaction

import (
	"context"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
)

type StubTransactionRepo struct {
	data map[string]Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[string]Transaction{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, tx Transaction) error {
	s.data[tx.ID] = tx
	return nil
}

func (s *StubTransactionRepo) GetForMonth(ctx context.Context, userId int, kind Kind, month utils.MonthKey) ([]Transaction, error) {
	var rows []Transaction
	for _, tx := range s.data {
		if tx.Kind == kind && month.Contains(tx.Date) {
			rows = append(rows, tx)
		}
	}
	return rows, nil
}

func (s *StubTransactionRepo) FindById(ctx context.Context, userId int, id string) (Transaction, error) {
	tx, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (s *StubTransactionRepo) Update(ctx context.Context, userId int, tx Transaction) (bool, error) {
	if _, ok := s.data[tx.ID]; !ok {
		return false, nil
	}
	s.data[tx.ID] = tx
	return true, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, userId int, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubTransactionRepo) SumBySection(ctx context.Context, userId int, kind Kind, month utils.MonthKey) (map[string]money.Cents, error) {
	sums := make(map[string]money.Cents)
	for _, tx := range s.data {
		if tx.Kind == kind && month.Contains(tx.Date) {
			sums[tx.Section] += tx.Amount
		}
	}
	return sums, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[string]Transaction{}
}
