package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

const (
	defaultMeasurementLimit = 30
	maxMeasurementLimit     = 365
)

// ErrMeasurementWeightRequired indicates a measurement without a weight.
var ErrMeasurementWeightRequired = errors.New("profile: measurement weight required")

// AddMeasurement stores a body measurement for the profile.
func (r *Repository) AddMeasurement(ctx context.Context, m types.BodyMeasurement) (*types.BodyMeasurement, error) {
	if m.ProfileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if m.WeightKg <= 0 {
		return nil, ErrMeasurementWeightRequired
	}
	now := r.clock.Now()
	rec := &MeasurementRecord{
		ID:         m.ID,
		ProfileID:  m.ProfileID,
		MeasuredOn: m.MeasuredOn,
		WeightKg:   m.WeightKg,
		BodyFatPct: cloneFloat(m.BodyFatPct),
		CreatedAt:  now,
	}
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	if rec.MeasuredOn.IsZero() {
		rec.MeasuredOn = now
	}
	rec.MeasuredOn = types.DayOf(rec.MeasuredOn)

	if _, err := r.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		return nil, err
	}
	return measurementToDomain(rec), nil
}

// ListMeasurements returns measurements newest first along with the total.
func (r *Repository) ListMeasurements(ctx context.Context, profileID uuid.UUID, page types.Pagination) ([]types.BodyMeasurement, int, error) {
	if profileID == uuid.Nil {
		return nil, 0, types.ErrProfileIDRequired
	}
	limit := page.Limit
	if limit <= 0 {
		limit = defaultMeasurementLimit
	}
	if limit > maxMeasurementLimit {
		limit = maxMeasurementLimit
	}
	offset := max(page.Offset, 0)

	var records []MeasurementRecord
	total, err := r.db.NewSelect().
		Model(&records).
		Where("profile_id = ?", profileID).
		Order("measured_on DESC", "created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]types.BodyMeasurement, 0, len(records))
	for i := range records {
		out = append(out, *measurementToDomain(&records[i]))
	}
	return out, total, nil
}

func measurementToDomain(rec *MeasurementRecord) *types.BodyMeasurement {
	return &types.BodyMeasurement{
		ID:         rec.ID,
		ProfileID:  rec.ProfileID,
		MeasuredOn: rec.MeasuredOn,
		WeightKg:   rec.WeightKg,
		BodyFatPct: cloneFloat(rec.BodyFatPct),
		CreatedAt:  rec.CreatedAt,
	}
}
