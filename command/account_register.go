package command

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// AccountCommandConfig wires dependencies for registration and password changes.
type AccountCommandConfig struct {
	Accounts    types.AccountRepository
	Profiles    types.ProfileRepository
	Hasher      types.PasswordHasher
	FeatureGate featuregate.FeatureGate
	Activity    types.ActivitySink
	Hooks       types.Hooks
	Clock       types.Clock
	Logger      types.Logger
}

// AccountRegisterInput carries a self-registration request.
type AccountRegisterInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Result          *AccountRegisterResult
}

// AccountRegisterResult exposes the created account and its empty profile.
type AccountRegisterResult struct {
	Account *types.Account
	Profile *types.Profile
}

// Type implements gocommand.Message.
func (AccountRegisterInput) Type() string {
	return "command.account.register"
}

// Validate implements gocommand.Message.
func (input AccountRegisterInput) Validate() error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrEmailRequired
	}
	if strings.TrimSpace(input.Username) == "" {
		return ErrUsernameRequired
	}
	return validateNewPassword(input.Password, input.PasswordConfirm)
}

func validateNewPassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// AccountRegisterCommand creates an account and the empty profile the
// calculator later fills in.
type AccountRegisterCommand struct {
	accounts types.AccountRepository
	profiles types.ProfileRepository
	hasher   types.PasswordHasher
	gate     featuregate.FeatureGate
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// NewAccountRegisterCommand constructs the registration handler.
func NewAccountRegisterCommand(cfg AccountCommandConfig) *AccountRegisterCommand {
	return &AccountRegisterCommand{
		accounts: cfg.Accounts,
		profiles: cfg.Profiles,
		hasher:   cfg.Hasher,
		gate:     cfg.FeatureGate,
		sink:     safeActivitySink(cfg.Activity),
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AccountRegisterInput] = (*AccountRegisterCommand)(nil)

// Execute registers the account.
func (c *AccountRegisterCommand) Execute(ctx context.Context, input AccountRegisterInput) error {
	if c.accounts == nil {
		return types.ErrMissingAccountRepository
	}
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if c.hasher == nil {
		return ErrMissingPasswordHasher
	}
	enabled, err := featureEnabled(ctx, c.gate, FeatureSignup, uuid.Nil)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrSignupDisabled
	}
	if err := input.Validate(); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	for _, identifier := range []string{email, username} {
		_, err := c.accounts.GetByIdentifier(ctx, identifier)
		switch {
		case err == nil:
			return ErrAccountExists
		case !errors.Is(err, types.ErrAccountNotFound):
			return err
		}
	}

	hash, err := c.hasher.Hash(input.Password)
	if err != nil {
		return err
	}
	account, err := c.accounts.Create(ctx, &types.Account{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         types.ActorRoleMember,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	profile, err := c.profiles.CreateProfile(ctx, types.Profile{
		UserID:        account.ID,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		ActivityLevel: types.ActivitySedentary,
		Goal:          types.GoalMaintenance,
	})
	if err != nil {
		c.logger.Error("create profile for registered account", err, "user_id", account.ID)
		return err
	}

	if input.Result != nil {
		*input.Result = AccountRegisterResult{Account: account, Profile: profile}
	}

	occurredAt := now(c.clock)
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     account.ID,
		ActorID:    account.ID,
		Verb:       activity.VerbAccountRegistered,
		ObjectType: "account",
		ObjectID:   account.ID.String(),
		Channel:    activity.ChannelAccounts,
		Data: map[string]any{
			"email":    account.Email,
			"username": account.Username,
		},
		OccurredAt: occurredAt,
	})
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		UserID:     account.ID,
		ActorID:    account.ID,
		OccurredAt: occurredAt,
		Profile:    *profile,
	})
	return nil
}
