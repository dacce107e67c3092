package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// PasswordChangeConfig wires dependencies for password changes.
type PasswordChangeConfig struct {
	Accounts types.AccountRepository
	Hasher   types.PasswordHasher
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	Guard    access.Guard
}

// PasswordChangeInput captures a password change for the acting user.
type PasswordChangeInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
	PasswordConfirm string
	Actor           types.ActorRef
}

// Type implements gocommand.Message.
func (PasswordChangeInput) Type() string {
	return "command.account.password.change"
}

// Validate implements gocommand.Message.
func (input PasswordChangeInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if err := validateNewPassword(input.NewPassword, input.PasswordConfirm); err != nil {
		return err
	}
	if input.NewPassword == input.CurrentPassword {
		return ErrPasswordUnchanged
	}
	return nil
}

// PasswordChangeCommand verifies the current password and stores a new hash.
type PasswordChangeCommand struct {
	accounts types.AccountRepository
	hasher   types.PasswordHasher
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	guard    access.Guard
}

// NewPasswordChangeCommand constructs the handler.
func NewPasswordChangeCommand(cfg PasswordChangeConfig) *PasswordChangeCommand {
	return &PasswordChangeCommand{
		accounts: cfg.Accounts,
		hasher:   cfg.Hasher,
		sink:     safeActivitySink(cfg.Activity),
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[PasswordChangeInput] = (*PasswordChangeCommand)(nil)

// Execute changes the password.
func (c *PasswordChangeCommand) Execute(ctx context.Context, input PasswordChangeInput) error {
	if c.accounts == nil {
		return types.ErrMissingAccountRepository
	}
	if c.hasher == nil {
		return ErrMissingPasswordHasher
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionAccountWrite, input.UserID)
	if err != nil {
		return err
	}

	account, err := c.accounts.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := c.hasher.Compare(account.PasswordHash, input.CurrentPassword); err != nil {
		return ErrCurrentPasswordInvalid
	}
	hash, err := c.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := c.accounts.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbPasswordChanged,
		ObjectType: "account",
		ObjectID:   userID.String(),
		Channel:    activity.ChannelAccounts,
		OccurredAt: now(c.clock),
	})
	return nil
}
