package transaction

import (
	"time"

	"github.com/finbook/finbook/internal/money"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known transaction kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense row.
type Transaction struct {
	ID          string
	Kind        Kind
	Date        time.Time
	Description string
	Amount      money.Cents
	// TagId is a weak reference: deleting a tag does not cascade here and an
	// orphaned id is tolerated.
	TagId string
	// Section is the spending section the row counts towards (needs breakdown).
	Section string
	// Source records where the row came from: manual, qr, or ekasa.
	Source string
}
