package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grocery-assistant/backend/internal/database"
	"github.com/grocery-assistant/backend/internal/errors"
)

// ItemStore persists inventory items scoped by owner.
type ItemStore struct {
	db database.RepositoryInterface
}

// NewItemStore creates an item store over the given repository.
func NewItemStore(db database.RepositoryInterface) *ItemStore {
	return &ItemStore{db: db}
}

// newItem builds an item record with a fresh ID and timestamp. Item names are
// not unique; callers may add the same name repeatedly.
func newItem(userID, name, category, expiry string) *database.Item {
	return &database.Item{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            name,
		Category:        category,
		PredictedExpiry: expiry,
		AddedOn:         time.Now().Format(database.TimestampFormat),
	}
}

// Add persists an item.
func (s *ItemStore) Add(ctx context.Context, item *database.Item) error {
	if err := s.db.CreateItem(ctx, item); err != nil {
		return errors.Internal("Failed to add item", err)
	}
	return nil
}

// ListByOwner returns all items owned by userID in insertion order.
func (s *ItemStore) ListByOwner(ctx context.Context, userID string) ([]database.Item, error) {
	items, err := s.db.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch items", err)
	}
	return items, nil
}

// Delete removes the item matching both owner and id. An id owned by someone
// else is treated identically to a nonexistent id: NotFound, no existence leak.
func (s *ItemStore) Delete(ctx context.Context, userID, itemID string) error {
	deleted, err := s.db.DeleteItem(ctx, userID, itemID)
	if err != nil {
		return errors.Internal("Failed to delete item", err)
	}
	if deleted == 0 {
		return errors.NotFound("Item not found or deletion forbidden")
	}
	return nil
}

// Ping verifies the underlying store is reachable.
func (s *ItemStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
