package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

const dayLayout = "2006-01-02"

func queryInt(c router.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}

func pagination(c router.Context) types.Pagination {
	return types.Pagination{
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}
}

// parseDay accepts "today", an empty value (also today) or YYYY-MM-DD.
func parseDay(raw string, now time.Time) (time.Time, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "today" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(dayLayout, raw)
	if err != nil {
		return time.Time{}, badRequest(err, "macromate: day must be YYYY-MM-DD or today")
	}
	return day, nil
}

func parseOptionalDay(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	day, err := time.Parse(dayLayout, strings.TrimSpace(raw))
	if err != nil {
		return nil, badRequest(err, "macromate: date must be YYYY-MM-DD")
	}
	return &day, nil
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, badRequest(err, "macromate: invalid "+field)
	}
	return id, nil
}

func optionalUUID(raw, field string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, nil
	}
	return parseUUID(raw, field)
}

func (a *API) bind(c router.Context, out any) error {
	if err := c.Bind(out); err != nil {
		return badRequest(err, "macromate: malformed request body")
	}
	return nil
}
