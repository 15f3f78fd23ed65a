package ekasa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/tag"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Tags is the slice of the tag service the importer needs to map sellers to
// expense tags.
type Tags interface {
	List(ctx context.Context, tagType tag.Type) ([]tag.Tag, error)
	Create(ctx context.Context, name string, tagType tag.Type) (tag.Tag, error)
}

type Service interface {
	// ImportReceipt fetches the receipt from eKasa and stores it with all
	// its items. Importing the same receipt twice returns ErrDuplicate.
	ImportReceipt(ctx context.Context, receiptId string) (Receipt, error)
	ListItems(ctx context.Context, month utils.MonthKey) ([]ReceiptItem, error)
	CategorizeItem(ctx context.Context, itemId string, categoryId string) error
}

type ServiceImpl struct {
	client Client
	repo   Repo
	tags   Tags
	bus    *event_bus.EventBus
	clock  utils.Clock
}

func NewEkasaService(client Client, repo Repo, tags Tags, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{client: client, repo: repo, tags: tags, bus: bus, clock: clock}
}

func (s *ServiceImpl) ImportReceipt(ctx context.Context, receiptId string) (Receipt, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to get current user: %w", err)
	}

	payload, err := s.client.FetchReceipt(ctx, receiptId)
	if err != nil {
		return Receipt{}, err
	}

	receipt, err := s.mapPayload(payload)
	if err != nil {
		return Receipt{}, err
	}
	if receipt.Seller != "" {
		tagId, err := s.resolveSellerTag(ctx, receipt.Seller)
		if err != nil {
			// missing tag does not block the import
			log.Warnf("could not resolve tag for seller %q: %v", receipt.Seller, err)
		} else {
			receipt.TagId = tagId
		}
	}

	if err := s.repo.StoreReceipt(ctx, userId, receipt); err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

func (s *ServiceImpl) ListItems(ctx context.Context, month utils.MonthKey) ([]ReceiptItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetItemsForMonth(ctx, userId, month)
}

func (s *ServiceImpl) CategorizeItem(ctx context.Context, itemId string, categoryId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if categoryId == "" {
		return fmt.Errorf("category id must not be empty")
	}
	updated, err := s.repo.SetItemCategory(ctx, userId, itemId, categoryId)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ReceiptItemCategorizedEvent, event_bus.ReceiptItemCategorized{
		ItemId:     itemId,
		CategoryId: categoryId,
	})); err != nil {
		log.Errorf("failed to publish item categorized event: %v", err)
	}
	return nil
}

func (s *ServiceImpl) mapPayload(payload *ReceiptPayload) (Receipt, error) {
	total, err := money.ParseFloat(payload.TotalPrice)
	if err != nil {
		return Receipt{}, fmt.Errorf("invalid receipt total: %w", err)
	}

	receipt := Receipt{
		ID:          uuid.NewString(),
		ExternalUid: payload.ReceiptId,
		IssueDate:   s.parseIssueDate(payload),
		TotalAmount: total,
		Seller:      payload.Organization.Name,
	}
	for _, it := range payload.Items {
		price, err := money.ParseFloat(it.Price)
		if err != nil {
			return Receipt{}, fmt.Errorf("invalid price for item %q: %w", it.Name, err)
		}
		quantity := int64(it.Quantity*1000 + 0.5)
		if quantity <= 0 {
			quantity = 1000
		}
		unitPrice := money.Cents(int64(price) * 1000 / quantity)
		receipt.Items = append(receipt.Items, ReceiptItem{
			ID:         uuid.NewString(),
			ReceiptId:  receipt.ID,
			Name:       it.Name,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			TotalPrice: price,
			VatRate:    int(it.VatRate),
		})
	}
	return receipt, nil
}

// parseIssueDate tries the formats eKasa is known to emit and falls back to
// the current date.
func (s *ServiceImpl) parseIssueDate(payload *ReceiptPayload) time.Time {
	for _, raw := range []string{payload.IssueDate, payload.CreateDate} {
		if raw == "" {
			continue
		}
		for _, layout := range []string{"02.01.2006 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return s.clock.Now()
}

func (s *ServiceImpl) resolveSellerTag(ctx context.Context, seller string) (string, error) {
	created, err := s.tags.Create(ctx, seller, tag.TypeExpense)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, tag.ErrNameTaken) {
		return "", err
	}
	existing, err := s.tags.List(ctx, tag.TypeExpense)
	if err != nil {
		return "", err
	}
	for _, t := range existing {
		if t.Name == seller {
			return t.ID, nil
		}
	}
	return "", tag.ErrNotFound
}
