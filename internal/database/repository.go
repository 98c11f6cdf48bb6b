package database

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// RepositoryInterface is the persistence surface the services depend on.
type RepositoryInterface interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// Items
	CreateItem(ctx context.Context, item *Item) error
	ItemsByUser(ctx context.Context, userID string) ([]Item, error)
	// DeleteItem deletes at most one item matching both owner and id and
	// returns the number of records removed.
	DeleteItem(ctx context.Context, userID, itemID string) (int, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Repository implements RepositoryInterface against the REST document store.
type Repository struct {
	client *Client
}

// NewRepository creates a repository backed by the given client.
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

var _ RepositoryInterface = (*Repository)(nil)

// CreateUser inserts a user. Username and email uniqueness is enforced by the
// store's constraints; a collision surfaces as ErrUniqueViolation.
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if _, err := r.client.request(ctx, "POST", "users", user, ""); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindUserByUsernameOrEmail returns the first user matching either field, or
// nil when none exists. A single combined query, matching the registration
// contract.
func (r *Repository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	query := fmt.Sprintf("or=(username.eq.%s,email.eq.%s)&limit=1",
		url.QueryEscape(username), url.QueryEscape(email))
	return r.findUser(ctx, query)
}

// FindUserByUsername returns the user with the given username, or nil.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.findUser(ctx, "username=eq."+url.QueryEscape(username)+"&limit=1")
}

func (r *Repository) findUser(ctx context.Context, query string) (*User, error) {
	data, err := r.client.request(ctx, "GET", "users", nil, query)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// CreateItem inserts an item. Item names are not unique; this always succeeds
// when the store is reachable.
func (r *Repository) CreateItem(ctx context.Context, item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if _, err := r.client.request(ctx, "POST", "items", item, ""); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// ItemsByUser returns every item owned by userID in insertion order.
func (r *Repository) ItemsByUser(ctx context.Context, userID string) ([]Item, error) {
	data, err := r.client.request(ctx, "GET", "items", nil, "user_id=eq."+url.QueryEscape(userID))
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}

// DeleteItem removes the item matching both owner and id. The two-field
// predicate makes "not yours" indistinguishable from "does not exist".
func (r *Repository) DeleteItem(ctx context.Context, userID, itemID string) (int, error) {
	query := fmt.Sprintf("id=eq.%s&user_id=eq.%s",
		url.QueryEscape(itemID), url.QueryEscape(userID))
	data, err := r.client.request(ctx, "DELETE", "items", nil, query)
	if err != nil {
		return 0, fmt.Errorf("delete item: %w", err)
	}
	var deleted []Item
	if err := json.Unmarshal(data, &deleted); err != nil {
		return 0, fmt.Errorf("unmarshal delete result: %w", err)
	}
	return len(deleted), nil
}

// Ping performs a lightweight read to verify the store connection.
func (r *Repository) Ping(ctx context.Context) error {
	if _, err := r.client.request(ctx, "GET", "users", nil, "limit=1"); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
