// Package ekasa imports fiscal receipts from the Slovak eKasa service and
// keeps their line items for per-category tracking.
package ekasa

import (
	"time"

	"github.com/finbook/finbook/internal/money"
)

// minOPDLength is the shortest receipt identifier eKasa accepts.
const minOPDLength = 8

// ValidateOPD reports whether an OPD receipt identifier is plausible enough
// to send to the eKasa service.
func ValidateOPD(opd string) bool {
	return len(opd) >= minOPDLength
}

type Receipt struct {
	ID          string
	ExternalUid string
	IssueDate   time.Time
	TagId       string
	TotalAmount money.Cents
	Seller      string
	Items       []ReceiptItem
}

type ReceiptItem struct {
	ID        string
	ReceiptId string
	Name      string
	// Quantity is stored in thousandths so fractional amounts (0.253 kg)
	// stay exact.
	Quantity   int64
	UnitPrice  money.Cents
	TotalPrice money.Cents
	VatRate    int
	CategoryId string
}
