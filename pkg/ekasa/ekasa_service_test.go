package ekasa

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/tag"
	"github.com/finbook/finbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

var (
	clientStub = NewClientStub()
	repoStub   = NewStubReceiptRepo()
	tagStub    = tag.NewStubTagRepo()
)

var service Service

var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	tags := tag.NewTagService(tagStub, bus)
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	service = NewEkasaService(clientStub, repoStub, tags, bus, clock)
	return func() {
		t.Log("Teardown after test")
		clientStub.Cleanup()
		repoStub.Cleanup()
		tagStub.Cleanup()
	}
}

func terno() *ReceiptPayload {
	return &ReceiptPayload{
		ReceiptId:  "O-1234567890",
		IssueDate:  "14.03.2025 18:32:10",
		TotalPrice: 12.47,
		Organization: PayloadOrganization{
			Name: "TERNO",
		},
		Items: []ReceiptPayloadItem{
			{Name: "Rozky", Quantity: 10, Price: 1.90, VatRate: 20},
			{Name: "Maslo", Quantity: 1, Price: 2.49, VatRate: 20},
			{Name: "Jablka", Quantity: 0.75, Price: 1.20, VatRate: 20},
		},
	}
}

func TestServiceImpl_ImportReceipt(t *testing.T) {
	t.Run("should import a receipt with all its items", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		clientStub.AddReceipt(terno())

		// when
		receipt, err := service.ImportReceipt(ctx, "O-1234567890")

		// then
		require.NoError(t, err)
		assert.Equal(t, "O-1234567890", receipt.ExternalUid)
		assert.Equal(t, "TERNO", receipt.Seller)
		assert.Equal(t, money.Cents(1247), receipt.TotalAmount)
		require.Len(t, receipt.Items, 3)
		assert.Equal(t, int64(750), receipt.Items[2].Quantity)
		assert.Equal(t, money.Cents(120), receipt.Items[2].TotalPrice)
	})

	t.Run("should create an expense tag named after the seller", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		clientStub.AddReceipt(terno())

		// when
		receipt, err := service.ImportReceipt(ctx, "O-1234567890")

		// then
		require.NoError(t, err)
		require.NotEmpty(t, receipt.TagId)
		stored, err := tagStub.FindByName(ctx, 1, "TERNO", tag.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, receipt.TagId)
	})

	t.Run("should reuse an existing seller tag", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		existing := tag.Tag{ID: "tag-terno", Name: "TERNO", Type: tag.TypeExpense}
		require.NoError(t, tagStub.Store(ctx, 1, existing))
		clientStub.AddReceipt(terno())

		// when
		receipt, err := service.ImportReceipt(ctx, "O-1234567890")

		// then
		require.NoError(t, err)
		assert.Equal(t, "tag-terno", receipt.TagId)
	})

	t.Run("should reject a second import of the same receipt", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		clientStub.AddReceipt(terno())
		_, err := service.ImportReceipt(ctx, "O-1234567890")
		require.NoError(t, err)

		// when
		_, err = service.ImportReceipt(ctx, "O-1234567890")

		// then
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("should reject a too short receipt id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ImportReceipt(ctx, "O-12")

		// then
		assert.ErrorIs(t, err, ErrInvalidOPD)
	})

	t.Run("should surface not found from eKasa", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ImportReceipt(ctx, "O-0000000000")

		// then
		assert.ErrorIs(t, err, ErrReceiptNotFound)
	})
}

func TestServiceImpl_ListItems(t *testing.T) {
	t.Run("should list only items of receipts issued in the month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		clientStub.AddReceipt(terno())
		february := terno()
		february.ReceiptId = "O-0987654321"
		february.IssueDate = "10.02.2025 09:00:00"
		february.Items = february.Items[:1]
		clientStub.AddReceipt(february)
		_, err := service.ImportReceipt(ctx, "O-1234567890")
		require.NoError(t, err)
		_, err = service.ImportReceipt(ctx, "O-0987654321")
		require.NoError(t, err)

		// when
		items, err := service.ListItems(ctx, "2025-03")

		// then
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})
}

func TestServiceImpl_CategorizeItem(t *testing.T) {
	t.Run("should assign the category and publish an event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		clientStub.AddReceipt(terno())
		receipt, err := service.ImportReceipt(ctx, "O-1234567890")
		require.NoError(t, err)

		var published []event_bus.ReceiptItemCategorized
		event_bus.SubscribeTyped[event_bus.ReceiptItemCategorized](bus, event_bus.ReceiptItemCategorizedEvent,
			func(e event_bus.EventT[event_bus.ReceiptItemCategorized]) error {
				published = append(published, e.Data)
				return nil
			})

		// when
		err = service.CategorizeItem(ctx, receipt.Items[0].ID, "cat-jedlo")

		// then
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "cat-jedlo", published[0].CategoryId)
	})

	t.Run("should return not found for an unknown item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.CategorizeItem(ctx, "missing", "cat-jedlo")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should reject an empty category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.CategorizeItem(ctx, "any", "")

		// then
		assert.Error(t, err)
	})
}
