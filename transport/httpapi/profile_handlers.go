package httpapi

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/query"
)

type profileRequest struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	BirthDate      *string  `json:"birth_date"`
	Gender         *string  `json:"gender"`
	HeightCm       *float64 `json:"height_cm"`
	WeightKg       *float64 `json:"weight_kg"`
	TargetWeightKg *float64 `json:"target_weight_kg"`
	ActivityLevel  *string  `json:"activity_level"`
	Goal           *string  `json:"goal"`
}

func (r profileRequest) patch() (types.ProfilePatch, error) {
	patch := types.ProfilePatch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Gender:         r.Gender,
		HeightCm:       r.HeightCm,
		WeightKg:       r.WeightKg,
		TargetWeightKg: r.TargetWeightKg,
		ActivityLevel:  r.ActivityLevel,
		Goal:           r.Goal,
	}
	if r.BirthDate != nil {
		birth, err := parseOptionalDay(*r.BirthDate)
		if err != nil {
			return types.ProfilePatch{}, err
		}
		patch.BirthDate = birth
	}
	return patch, nil
}

func (a *API) profileDetail(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	profile, err := a.queries.ProfileDetail.Query(c.Context(), query.ProfileQueryInput{Actor: actor})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (a *API) profileUpdate(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req profileRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	patch, err := req.patch()
	if err != nil {
		return a.fail(c, err)
	}
	updated := &types.Profile{}
	err = a.commands.ProfileUpdate.Execute(c.Context(), command.ProfileUpdateInput{
		Patch:  patch,
		Actor:  actor,
		Result: updated,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (a *API) goalHistory(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	changes, err := a.queries.GoalHistory.Query(c.Context(), query.ProfileQueryInput{Actor: actor})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"changes": changes})
}

func (a *API) measurements(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	page, err := a.queries.Measurements.Query(c.Context(), query.MeasurementsInput{
		Actor:      actor,
		Pagination: pagination(c),
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

type measurementRequest struct {
	MeasuredOn string   `json:"measured_on"`
	WeightKg   float64  `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct"`
}

func (a *API) recordMeasurement(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req measurementRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	day, err := parseDay(req.MeasuredOn, a.clock.Now())
	if err != nil {
		return a.fail(c, err)
	}
	recorded := &types.BodyMeasurement{}
	err = a.commands.MeasurementRecord.Execute(c.Context(), command.MeasurementRecordInput{
		MeasuredOn: day,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		Actor:      actor,
		Result:     recorded,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusCreated, recorded)
}

// calculateMacros answers 200 for both outcomes of the calculator: the body
// is either the success payload or the error payload naming missing fields.
func (a *API) calculateMacros(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	on, err := parseOptionalDay(c.Query("on"))
	if err != nil {
		return a.fail(c, err)
	}
	result := &command.MacroCalculateResult{}
	err = a.commands.MacroCalculate.Execute(c.Context(), command.MacroCalculateInput{
		On:     on,
		Actor:  actor,
		Result: result,
	})
	if err != nil {
		if errors.Is(err, types.ErrProfileNotFound) {
			return a.fail(c, goerrors.Wrap(err, goerrors.CategoryValidation, "macromate: create a profile before calculating macros").
				WithCode(http.StatusBadRequest).
				WithTextCode(textCodeProfileRequired))
		}
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, result.Macros)
}

func (a *API) activeMacros(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	record, err := a.queries.ActiveMacros.Query(c.Context(), query.ProfileQueryInput{Actor: actor})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

func (a *API) macroHistory(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	page, err := a.queries.MacroHistory.Query(c.Context(), query.MacroHistoryInput{
		Actor:      actor,
		Pagination: pagination(c),
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"records":     page.Records,
		"total":       page.Total,
		"next_offset": page.NextOffset,
		"has_more":    page.HasMore,
	})
}
