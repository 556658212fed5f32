// Package catalog implements a minimal in-memory item catalog. It is the
// reference domain for the error translation pipeline: every failure mode
// surfaces as a typed fault that the translator maps via configuration.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Item is a catalog entry.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required,min=1,max=200"`
	Price int64  `json:"price" validate:"min=0"`
}

// Service is a concurrency-safe in-memory catalog.
type Service struct {
	mu       sync.RWMutex
	items    map[string]Item
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates an empty catalog service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		items:    make(map[string]Item),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Get returns the item with the given ID.
func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return Item{}, NewNotFoundError(id)
	}

	return item, nil
}

// List returns all items ordered by ID.
func (s *Service) List(ctx context.Context) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items
}

// Create validates and stores a new item. An empty ID is assigned one.
func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	if err := s.validate.Struct(item); err != nil {
		return Item{}, NewValidationError(err)
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return Item{}, NewDuplicateError(item.ID)
	}

	s.items[item.ID] = item

	s.logger.Debug("item created", slog.String("item_id", item.ID))

	return item, nil
}

// Ping reports whether the store is reachable. The in-memory store only
// fails when the service context is gone.
func (s *Service) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return NewNotFoundError(id)
	}

	delete(s.items, id)

	return nil
}
