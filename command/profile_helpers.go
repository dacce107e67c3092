package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

func profileForUser(ctx context.Context, repo types.ProfileRepository, userID uuid.UUID) (*types.Profile, error) {
	profile, err := repo.GetProfileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, types.ErrProfileNotFound
	}
	return profile, nil
}

func positive(v *float64, err error) error {
	if v != nil && *v <= 0 {
		return err
	}
	return nil
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
