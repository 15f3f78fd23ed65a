package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewCategoryService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo}
	event_bus.SubscribeTyped[event_bus.ReceiptItemCategorized](bus, event_bus.ReceiptItemCategorizedEvent,
		func(e event_bus.EventT[event_bus.ReceiptItemCategorized]) error {
			return s.repo.IncrementCount(e.Context(), e.Data.CategoryId)
		})
	return s
}

func (s *ServiceImpl) List(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return Category{}, fmt.Errorf("category name must not be empty")
	}
	category.ID = uuid.NewString()
	if err := s.repo.Store(ctx, userId, category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *ServiceImpl) Update(ctx context.Context, category Category) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(category.Name) == "" {
		return false, fmt.Errorf("category name must not be empty")
	}
	updated, err := s.repo.Update(ctx, userId, category)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("category not updated, probably because it does not exist (%s) or the user (%d) is not the owner", category.ID, userId)
		return false, ErrNotFound
	}
	return true, nil
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
		return false, ErrNotFound
	}
	return true, nil
}
