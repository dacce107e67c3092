package goauth

import (
	"context"
	"strings"

	auth "github.com/goliatone/go-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

// AccountsAdapter wraps the go-auth Users repository so it satisfies
// types.AccountRepository.
type AccountsAdapter struct {
	repo auth.Users
}

// NewAccountsAdapter builds an AccountsAdapter.
func NewAccountsAdapter(repo auth.Users) *AccountsAdapter {
	return &AccountsAdapter{repo: repo}
}

var _ types.AccountRepository = (*AccountsAdapter)(nil)

// GetByID loads an account by UUID.
func (a *AccountsAdapter) GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	record, err := a.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toAccount(record), nil
}

// GetByIdentifier loads an account by email, username or UUID.
func (a *AccountsAdapter) GetByIdentifier(ctx context.Context, identifier string) (*types.Account, error) {
	record, err := a.repo.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toAccount(record), nil
}

// Create delegates to go-auth's repository.
func (a *AccountsAdapter) Create(ctx context.Context, account *types.Account) (*types.Account, error) {
	created, err := a.repo.Create(ctx, fromAccount(account))
	if err != nil {
		return nil, err
	}
	return toAccount(created), nil
}

// UpdatePassword stores a new password hash through go-auth.
func (a *AccountsAdapter) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return mapNotFound(a.repo.ResetPassword(ctx, id, passwordHash))
}

func mapNotFound(err error) error {
	if err != nil && repository.IsRecordNotFound(err) {
		return types.ErrAccountNotFound
	}
	return err
}

func toAccount(user *auth.User) *types.Account {
	if user == nil {
		return nil
	}
	return &types.Account{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		Status:       string(user.Status),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}

func fromAccount(account *types.Account) *auth.User {
	if account == nil {
		return nil
	}
	role := account.Role
	if role == "" {
		role = types.ActorRoleMember
	}
	status := account.Status
	if status == "" {
		status = string(auth.UserStatusActive)
	}
	return &auth.User{
		ID:           account.ID,
		Role:         auth.UserRole(role),
		Status:       auth.UserStatus(status),
		Email:        strings.ToLower(strings.TrimSpace(account.Email)),
		Username:     strings.TrimSpace(account.Username),
		FirstName:    strings.TrimSpace(account.FirstName),
		LastName:     strings.TrimSpace(account.LastName),
		PasswordHash: account.PasswordHash,
	}
}
