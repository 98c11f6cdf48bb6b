package auth

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/grocery-assistant/backend/internal/database"
	"github.com/grocery-assistant/backend/internal/errors"
)

// CredentialStore persists user records and verifies passwords against their
// stored hashes.
type CredentialStore struct {
	db database.RepositoryInterface
}

// NewCredentialStore creates a credential store over the given repository.
func NewCredentialStore(db database.RepositoryInterface) *CredentialStore {
	return &CredentialStore{db: db}
}

// Register creates a user. Existence is checked with a single combined
// username-or-email query; the first match wins and the message stays generic
// so neither field can be enumerated. The store's own constraints catch
// concurrent racers.
func (c *CredentialStore) Register(ctx context.Context, username, email, password string) (*database.User, error) {
	existing, err := c.db.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, errors.Internal("Registration failed", err)
	}
	if existing != nil {
		return nil, errors.Conflict("User exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Registration failed", err)
	}

	user := &database.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Format(database.TimestampFormat),
	}

	if err := c.db.CreateUser(ctx, user); err != nil {
		if stderrors.Is(err, database.ErrUniqueViolation) {
			return nil, errors.Conflict("User exists")
		}
		return nil, errors.Internal("Registration failed", err)
	}
	return user, nil
}

// Verify checks a username/password pair. Unknown user and wrong password
// return the identical error; callers cannot tell which failed.
func (c *CredentialStore) Verify(ctx context.Context, username, password string) (*database.User, error) {
	user, err := c.db.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.Internal("Login failed due to server error", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthenticated("Invalid credentials")
	}
	return user, nil
}

// Ping verifies the underlying store is reachable.
func (c *CredentialStore) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}
