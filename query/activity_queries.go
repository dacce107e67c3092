package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	masker "github.com/goliatone/go-masker"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// ActivityFeedQuery renders paginated activity feeds. Members only see their
// own records; privileged actors may pass any UserID or none.
type ActivityFeedQuery struct {
	repo  types.ActivityRepository
	guard access.Guard
	mask  *masker.Masker
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository, guard access.Guard) *ActivityFeedQuery {
	return &ActivityFeedQuery{
		repo:  repo,
		guard: safeGuard(guard),
		mask:  activity.DefaultMasker(),
	}
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityFeedQuery)(nil)

// Query fetches a page of activity logs via the injected repository.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityPage{}, err
	}
	if filter.UserID != uuid.Nil || !filter.Actor.IsPrivileged() {
		userID, err := q.guard.Enforce(ctx, filter.Actor, types.PolicyActionActivityRead, filter.UserID)
		if err != nil {
			return types.ActivityPage{}, err
		}
		filter.UserID = userID
	}
	page, err := q.repo.ListActivity(ctx, filter)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page.Records = activity.SanitizeRecords(q.mask, page.Records)
	return page, nil
}
