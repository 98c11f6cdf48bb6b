package database

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory implementation of RepositoryInterface. It
// backs local development when no store URL is configured, and tests. The
// mutex gives the same serialization guarantee the real store's constraints
// provide: of two concurrent conflicting registrations, exactly one wins.
type MemoryRepository struct {
	mu sync.RWMutex

	users map[string]*User
	items []*Item

	// ErrorOnNextCall injects a failure into the next operation, for testing
	// error paths.
	ErrorOnNextCall error
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]*User),
	}
}

var _ RepositoryInterface = (*MemoryRepository)(nil)

// checkError returns and clears any injected error.
func (m *MemoryRepository) checkError() error {
	if m.ErrorOnNextCall != nil {
		err := m.ErrorOnNextCall
		m.ErrorOnNextCall = nil
		return err
	}
	return nil
}

// Reset clears all data.
func (m *MemoryRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]*User)
	m.items = nil
	m.ErrorOnNextCall = nil
}

// CreateUser inserts a user, enforcing username and email uniqueness.
func (m *MemoryRepository) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrUniqueViolation
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// FindUserByUsernameOrEmail returns the first user matching either field.
func (m *MemoryRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	for _, user := range m.users {
		if user.Username == username || user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (m *MemoryRepository) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

// CreateItem appends an item, preserving insertion order.
func (m *MemoryRepository) CreateItem(ctx context.Context, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	copied := *item
	m.items = append(m.items, &copied)
	return nil
}

// ItemsByUser returns the caller's items in insertion order.
func (m *MemoryRepository) ItemsByUser(ctx context.Context, userID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	result := make([]Item, 0)
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

// DeleteItem removes at most one item matching both owner and id.
func (m *MemoryRepository) DeleteItem(ctx context.Context, userID, itemID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return 0, err
	}
	for i, item := range m.items {
		if item.ID == itemID && item.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Ping always succeeds unless an error is injected.
func (m *MemoryRepository) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkError()
}
