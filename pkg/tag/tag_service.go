package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrNameTaken is returned when a tag with the same name and type already
// exists for the user.
var ErrNameTaken = errors.New("tag name already exists")

type Service interface {
	List(ctx context.Context, tagType Type) ([]Tag, error)
	Create(ctx context.Context, name string, tagType Type) (Tag, error)
	Rename(ctx context.Context, id string, name string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewTagService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo}
	event_bus.SubscribeTyped[event_bus.TransactionCreated](bus, event_bus.TransactionCreatedEvent,
		func(e event_bus.EventT[event_bus.TransactionCreated]) error {
			if e.Data.TagId == "" {
				return nil
			}
			return s.repo.IncrementCounter(e.Context(), e.Data.TagId)
		})
	return s
}

func (s *ServiceImpl) List(ctx context.Context, tagType Type) ([]Tag, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !tagType.Valid() {
		return nil, fmt.Errorf("invalid tag type: %q", tagType)
	}
	return s.repo.GetByType(ctx, userId, tagType)
}

// Create stores a new tag. The id is only handed out after the store succeeds,
// so callers never observe a tag that the server has not confirmed.
func (s *ServiceImpl) Create(ctx context.Context, name string, tagType Type) (Tag, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Tag{}, fmt.Errorf("failed to get current user: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("tag name must not be empty")
	}
	if !tagType.Valid() {
		return Tag{}, fmt.Errorf("invalid tag type: %q", tagType)
	}

	_, err = s.repo.FindByName(ctx, userId, name, tagType)
	if err == nil {
		return Tag{}, ErrNameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return Tag{}, err
	}

	tag := Tag{ID: uuid.NewString(), Name: name, Type: tagType}
	if err := s.repo.Store(ctx, userId, tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (s *ServiceImpl) Rename(ctx context.Context, id string, name string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("tag name must not be empty")
	}
	updated, err := s.repo.Update(ctx, userId, Tag{ID: id, Name: strings.TrimSpace(name)})
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("tag not updated, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrNotFound
	}
	return true, nil
}

// Delete removes the tag. Transactions keep their tag_id; orphaned references
// are tolerated.
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
