package ekasa

import (
	"context"

	"github.com/finbook/finbook/internal/utils"
)

type StubReceiptRepo struct {
	receipts map[string]Receipt
}

func NewStubReceiptRepo() *StubReceiptRepo {
	return &StubReceiptRepo{receipts: map[string]Receipt{}}
}

func (s *StubReceiptRepo) StoreReceipt(ctx context.Context, userId int, receipt Receipt) error {
	for _, existing := range s.receipts {
		if existing.ExternalUid == receipt.ExternalUid {
			return ErrDuplicate
		}
	}
	s.receipts[receipt.ID] = receipt
	return nil
}

func (s *StubReceiptRepo) GetItemsForMonth(ctx context.Context, userId int, month utils.MonthKey) ([]ReceiptItem, error) {
	var items []ReceiptItem
	for _, receipt := range s.receipts {
		if month.Contains(receipt.IssueDate) {
			items = append(items, receipt.Items...)
		}
	}
	return items, nil
}

func (s *StubReceiptRepo) SetItemCategory(ctx context.Context, userId int, itemId string, categoryId string) (bool, error) {
	for id, receipt := range s.receipts {
		for i := range receipt.Items {
			if receipt.Items[i].ID == itemId {
				receipt.Items[i].CategoryId = categoryId
				s.receipts[id] = receipt
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *StubReceiptRepo) Cleanup() {
	s.receipts = map[string]Receipt{}
}
