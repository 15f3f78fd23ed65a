package transaction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrValidation marks structural input problems the caller can fix and resubmit.
var ErrValidation = errors.New("validation failed")

type MonthListing struct {
	Rows  []Transaction
	Total money.Cents
}

type Service interface {
	ListMonth(ctx context.Context, kind Kind, month utils.MonthKey, sortBy string, order string) (MonthListing, error)
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	Update(ctx context.Context, tx Transaction, month utils.MonthKey) (Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewTransactionService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) ListMonth(ctx context.Context, kind Kind, month utils.MonthKey, sortBy string, order string) (MonthListing, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthListing{}, fmt.Errorf("failed to get current user: %w", err)
	}
	rows, err := s.repo.GetForMonth(ctx, userId, kind, month)
	if err != nil {
		return MonthListing{}, err
	}

	sortRows(rows, sortBy, order)

	// Total is always recomputed from the current row set.
	total := money.Cents(0)
	for _, row := range rows {
		total += row.Amount
	}
	return MonthListing{Rows: rows, Total: total}, nil
}

func (s *ServiceImpl) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	tx.ID = uuid.NewString()
	if tx.Source == "" {
		tx.Source = "manual"
	}
	if err := s.repo.Store(ctx, userId, tx); err != nil {
		return Transaction{}, err
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedEvent, event_bus.TransactionCreated{
		Id:     tx.ID,
		Kind:   string(tx.Kind),
		Date:   tx.Date,
		Amount: tx.Amount,
		TagId:  tx.TagId,
	})); err != nil {
		log.Warnf("transaction created event handling failed: %v", err)
	}
	return tx, nil
}

// Update validates and persists an edited row. When month is non-empty the row's
// date must stay within that month, matching the edit form's month view.
func (s *ServiceImpl) Update(ctx context.Context, tx Transaction, month utils.MonthKey) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	if month != "" && !month.Contains(tx.Date) {
		return Transaction{}, fmt.Errorf("%w: date %s is outside month %s", ErrValidation, tx.Date.Format(dateFormat), month)
	}
	updated, err := s.repo.Update(ctx, userId, tx)
	if err != nil {
		return Transaction{}, err
	}
	if !updated {
		log.Warnf("transaction not updated, probably because it does not exist (%s) or the user (%d) is not the owner", tx.ID, userId)
		return Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("transaction not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrNotFound
	}
	return true, nil
}

func validate(tx Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, tx.Kind)
	}
	if strings.TrimSpace(tx.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	if tx.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

func sortRows(rows []Transaction, sortBy string, order string) {
	desc := order != "asc"
	switch sortBy {
	case "amount":
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].Amount > rows[j].Amount
			}
			return rows[i].Amount < rows[j].Amount
		})
	default: // date
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].Date.After(rows[j].Date)
			}
			return rows[i].Date.Before(rows[j].Date)
		})
	}
}
