package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

// ProfileQueryInput selects the profile owner. A nil UserID means the actor.
type ProfileQueryInput struct {
	UserID uuid.UUID
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (ProfileQueryInput) Type() string {
	return "query.profile"
}

// ProfileDetailQuery fetches the profile of a user.
type ProfileDetailQuery struct {
	repo  types.ProfileRepository
	guard access.Guard
}

// NewProfileDetailQuery constructs the profile query helper.
func NewProfileDetailQuery(repo types.ProfileRepository, guard access.Guard) *ProfileDetailQuery {
	return &ProfileDetailQuery{
		repo:  repo,
		guard: safeGuard(guard),
	}
}

var _ gocommand.Querier[ProfileQueryInput, *types.Profile] = (*ProfileDetailQuery)(nil)

// Query returns the profile.
func (q *ProfileDetailQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.Profile, error) {
	return resolveProfile(ctx, q.guard, q.repo, input.Actor, types.PolicyActionProfileRead, input.UserID)
}

// GoalHistoryQuery lists goal transitions newest first.
type GoalHistoryQuery struct {
	repo  types.ProfileRepository
	guard access.Guard
}

// NewGoalHistoryQuery constructs the goal history helper.
func NewGoalHistoryQuery(repo types.ProfileRepository, guard access.Guard) *GoalHistoryQuery {
	return &GoalHistoryQuery{
		repo:  repo,
		guard: safeGuard(guard),
	}
}

var _ gocommand.Querier[ProfileQueryInput, []types.GoalChange] = (*GoalHistoryQuery)(nil)

// Query returns the goal history.
func (q *GoalHistoryQuery) Query(ctx context.Context, input ProfileQueryInput) ([]types.GoalChange, error) {
	profile, err := resolveProfile(ctx, q.guard, q.repo, input.Actor, types.PolicyActionProfileRead, input.UserID)
	if err != nil {
		return nil, err
	}
	return q.repo.ListGoalHistory(ctx, profile.ID)
}

// MeasurementsInput pages through a user's body measurements.
type MeasurementsInput struct {
	UserID     uuid.UUID
	Actor      types.ActorRef
	Pagination types.Pagination
}

// Type implements gocommand.Message.
func (MeasurementsInput) Type() string {
	return "query.profile.measurements"
}

// MeasurementPage lists measurements newest first.
type MeasurementPage struct {
	Measurements []types.BodyMeasurement `json:"measurements"`
	Total        int                     `json:"total"`
}

// MeasurementsQuery lists body measurements.
type MeasurementsQuery struct {
	profiles     types.ProfileRepository
	measurements types.MeasurementRepository
	guard        access.Guard
}

// NewMeasurementsQuery constructs the measurements helper.
func NewMeasurementsQuery(profiles types.ProfileRepository, measurements types.MeasurementRepository, guard access.Guard) *MeasurementsQuery {
	return &MeasurementsQuery{
		profiles:     profiles,
		measurements: measurements,
		guard:        safeGuard(guard),
	}
}

var _ gocommand.Querier[MeasurementsInput, MeasurementPage] = (*MeasurementsQuery)(nil)

// Query returns a page of measurements.
func (q *MeasurementsQuery) Query(ctx context.Context, input MeasurementsInput) (MeasurementPage, error) {
	if q.measurements == nil {
		return MeasurementPage{}, types.ErrMissingMeasurementRepository
	}
	profile, err := resolveProfile(ctx, q.guard, q.profiles, input.Actor, types.PolicyActionProfileRead, input.UserID)
	if err != nil {
		return MeasurementPage{}, err
	}
	items, total, err := q.measurements.ListMeasurements(ctx, profile.ID, input.Pagination)
	if err != nil {
		return MeasurementPage{}, err
	}
	if items == nil {
		items = []types.BodyMeasurement{}
	}
	return MeasurementPage{Measurements: items, Total: total}, nil
}
