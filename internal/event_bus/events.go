package event_bus

import (
	"time"

	"github.com/finbook/finbook/internal/money"
)

const (
	TransactionCreatedEvent     EventType = "transaction.created"
	ReceiptItemCategorizedEvent EventType = "receipt.item.categorized"
)

// TransactionCreated is published after a new income or expense is stored.
// Tag usage counters are maintained from it.
type TransactionCreated struct {
	Id     string
	Kind   string
	Date   time.Time
	Amount money.Cents
	TagId  string
}

// ReceiptItemCategorized is published when an imported receipt item is
// assigned a spending category.
type ReceiptItemCategorized struct {
	ItemId     string
	CategoryId string
}
