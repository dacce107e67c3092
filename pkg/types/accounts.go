package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is the storage-agnostic view of an upstream auth user.
type Account struct {
	ID           uuid.UUID
	Email        string
	Username     string
	FirstName    string
	LastName     string
	Role         string
	Status       string
	PasswordHash string
	CreatedAt    *time.Time
}

// AccountRepository abstracts the upstream user store. Implementations
// typically wrap go-auth's Users repository.
type AccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByIdentifier(ctx context.Context, identifier string) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
