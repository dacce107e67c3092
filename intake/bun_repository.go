package intake

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

// ErrInvalidQuantity indicates a non positive amount was logged.
var ErrInvalidQuantity = errors.New("intake: quantities must be positive")

// RepositoryConfig wires the Bun-backed intake store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*DailyLogRecord]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type dailyLogStore interface {
	repository.Repository[*DailyLogRecord]
}

// Repository implements types.IntakeRepository. Every write ensures the day
// row exists and applies its totals in the same transaction as the detail
// row, so day totals always equal the sum of their entries.
type Repository struct {
	dailyLogStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the intake repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("intake: db required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*DailyLogRecord]{
			NewRecord: func() *DailyLogRecord { return &DailyLogRecord{} },
			GetID: func(rec *DailyLogRecord) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *DailyLogRecord, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		dailyLogStore: repo,
		db:            cfg.DB,
		clock:         clock,
		idGen:         idGen,
	}, nil
}

var (
	_ repository.Repository[*DailyLogRecord] = (*Repository)(nil)
	_ types.IntakeRepository                 = (*Repository)(nil)
)

// LogFood records a consumed portion under the entry's meal slot.
func (r *Repository) LogFood(ctx context.Context, entry types.FoodLogEntry) (*types.DailyLog, error) {
	if entry.ProfileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if entry.Grams <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := types.ParseMealType(string(entry.MealType)); err != nil {
		return nil, err
	}
	now := r.clock.Now()
	day := dayOrToday(entry.Day, now)
	n := entry.Nutrients

	var out *DailyLogRecord
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		log, err := r.ensureLog(ctx, tx, entry.ProfileID, day)
		if err != nil {
			return err
		}
		meal, err := r.ensureMeal(ctx, tx, log.ID, entry.MealType, entry.MealName)
		if err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&ConsumedFoodRecord{
			ID:       r.idGen.UUID(),
			MealID:   meal.ID,
			FoodID:   entry.FoodID,
			Grams:    entry.Grams,
			Calories: n.Calories,
			ProteinG: n.ProteinG,
			CarbsG:   n.CarbsG,
			FatG:     n.FatG,
			LoggedAt: now,
		}).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model((*MealRecord)(nil)).
			Set("calories = calories + ?", n.Calories).
			Set("protein_g = protein_g + ?", n.ProteinG).
			Set("carbs_g = carbs_g + ?", n.CarbsG).
			Set("fat_g = fat_g + ?", n.FatG).
			Where("id = ?", meal.ID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model((*DailyLogRecord)(nil)).
			Set("calories_consumed = calories_consumed + ?", n.Calories).
			Set("protein_consumed = protein_consumed + ?", n.ProteinG).
			Set("carbs_consumed = carbs_consumed + ?", n.CarbsG).
			Set("fat_consumed = fat_consumed + ?", n.FatG).
			Set("updated_at = ?", now).
			Where("id = ?", log.ID).
			Exec(ctx); err != nil {
			return err
		}
		out, err = r.reloadLog(ctx, tx, log.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logToDomain(out), nil
}

// LogWater adds liters to the day's water total.
func (r *Repository) LogWater(ctx context.Context, profileID uuid.UUID, day time.Time, liters float64) (*types.DailyLog, error) {
	if profileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if liters <= 0 {
		return nil, ErrInvalidQuantity
	}
	now := r.clock.Now()
	day = dayOrToday(day, now)

	var out *DailyLogRecord
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		log, err := r.ensureLog(ctx, tx, profileID, day)
		if err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model((*DailyLogRecord)(nil)).
			Set("water_liters = water_liters + ?", liters).
			Set("updated_at = ?", now).
			Where("id = ?", log.ID).
			Exec(ctx); err != nil {
			return err
		}
		out, err = r.reloadLog(ctx, tx, log.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logToDomain(out), nil
}

// LogExercise records an exercise entry and adds its calories to the day.
func (r *Repository) LogExercise(ctx context.Context, entry types.ExerciseLogEntry) (*types.DailyLog, error) {
	if entry.ProfileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if entry.DurationMinutes <= 0 || entry.CaloriesBurned < 0 {
		return nil, ErrInvalidQuantity
	}
	now := r.clock.Now()
	day := dayOrToday(entry.Day, now)

	var out *DailyLogRecord
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		log, err := r.ensureLog(ctx, tx, entry.ProfileID, day)
		if err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&ExerciseEntryRecord{
			ID:              r.idGen.UUID(),
			DailyLogID:      log.ID,
			ExerciseID:      entry.ExerciseID,
			DurationMinutes: entry.DurationMinutes,
			CaloriesBurned:  entry.CaloriesBurned,
			Notes:           strings.TrimSpace(entry.Notes),
			LoggedAt:        now,
		}).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().
			Model((*DailyLogRecord)(nil)).
			Set("calories_burned = calories_burned + ?", entry.CaloriesBurned).
			Set("updated_at = ?", now).
			Where("id = ?", log.ID).
			Exec(ctx); err != nil {
			return err
		}
		out, err = r.reloadLog(ctx, tx, log.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logToDomain(out), nil
}

// GetDay returns the day's log with meals, foods and exercises expanded, or
// types.ErrDailyLogNotFound when nothing was logged that day.
func (r *Repository) GetDay(ctx context.Context, profileID uuid.UUID, day time.Time) (*types.DailyDetail, error) {
	if profileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	log, err := r.Get(ctx,
		repository.SelectBy("profile_id", "=", profileID.String()),
		selectDay(types.DayOf(day)),
	)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrDailyLogNotFound
		}
		return nil, err
	}

	var meals []*MealRecord
	if err := r.db.NewSelect().
		Model(&meals).
		Where("daily_log_id = ?", log.ID).
		Scan(ctx); err != nil {
		return nil, err
	}
	sortMeals(meals)

	var foods []*ConsumedFoodRecord
	if len(meals) > 0 {
		mealIDs := make([]string, 0, len(meals))
		for _, meal := range meals {
			mealIDs = append(mealIDs, meal.ID.String())
		}
		if err := r.db.NewSelect().
			Model(&foods).
			ColumnExpr("cf.*").
			ColumnExpr("f.name AS food_name").
			Join("LEFT JOIN foods AS f ON f.id = cf.food_id").
			Where("cf.meal_id IN (?)", bun.In(mealIDs)).
			Order("cf.logged_at ASC").
			Scan(ctx); err != nil {
			return nil, err
		}
	}

	var exercises []*ExerciseEntryRecord
	if err := r.db.NewSelect().
		Model(&exercises).
		ColumnExpr("ee.*").
		ColumnExpr("e.name AS exercise_name").
		Join("LEFT JOIN exercises AS e ON e.id = ee.exercise_id").
		Where("ee.daily_log_id = ?", log.ID).
		Order("ee.logged_at ASC").
		Scan(ctx); err != nil {
		return nil, err
	}

	detail := &types.DailyDetail{
		Log:       *logToDomain(log),
		Meals:     make([]types.Meal, 0, len(meals)),
		Exercises: make([]types.ExerciseEntry, 0, len(exercises)),
	}
	for _, meal := range meals {
		m := mealToDomain(meal)
		for _, food := range foods {
			if food.MealID == meal.ID {
				m.Foods = append(m.Foods, consumedToDomain(food))
			}
		}
		detail.Meals = append(detail.Meals, m)
	}
	for _, ex := range exercises {
		detail.Exercises = append(detail.Exercises, exerciseToDomain(ex))
	}
	return detail, nil
}

func (r *Repository) ensureLog(ctx context.Context, tx bun.Tx, profileID uuid.UUID, day time.Time) (*DailyLogRecord, error) {
	now := r.clock.Now()
	if _, err := tx.NewInsert().
		Model(&DailyLogRecord{
			ID:        r.idGen.UUID(),
			ProfileID: profileID,
			Day:       day,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		On("CONFLICT (profile_id, day) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, err
	}
	log := &DailyLogRecord{}
	if err := tx.NewSelect().
		Model(log).
		Where("profile_id = ?", profileID).
		Where("day = ?", day).
		Limit(1).
		Scan(ctx); err != nil {
		return nil, err
	}
	return log, nil
}

func (r *Repository) ensureMeal(ctx context.Context, tx bun.Tx, logID uuid.UUID, mealType types.MealType, name string) (*MealRecord, error) {
	canonical, err := types.ParseMealType(string(mealType))
	if err != nil {
		return nil, err
	}
	if _, err := tx.NewInsert().
		Model(&MealRecord{
			ID:         r.idGen.UUID(),
			DailyLogID: logID,
			MealType:   string(canonical),
			Name:       strings.TrimSpace(name),
		}).
		On("CONFLICT (daily_log_id, meal_type) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, err
	}
	meal := &MealRecord{}
	if err := tx.NewSelect().
		Model(meal).
		Where("daily_log_id = ?", logID).
		Where("meal_type = ?", string(canonical)).
		Limit(1).
		Scan(ctx); err != nil {
		return nil, err
	}
	return meal, nil
}

func (r *Repository) reloadLog(ctx context.Context, tx bun.Tx, id uuid.UUID) (*DailyLogRecord, error) {
	log := &DailyLogRecord{}
	if err := tx.NewSelect().Model(log).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, err
	}
	return log, nil
}

func selectDay(day time.Time) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("day = ?", day)
	}
}

func dayOrToday(day, now time.Time) time.Time {
	if day.IsZero() {
		return types.DayOf(now)
	}
	return types.DayOf(day)
}

var mealOrder = map[string]int{
	string(types.MealBreakfast): 0,
	string(types.MealLunch):     1,
	string(types.MealDinner):    2,
	string(types.MealSnack):     3,
}

func sortMeals(meals []*MealRecord) {
	sort.SliceStable(meals, func(i, j int) bool {
		return mealOrder[meals[i].MealType] < mealOrder[meals[j].MealType]
	})
}

func logToDomain(rec *DailyLogRecord) *types.DailyLog {
	if rec == nil {
		return nil
	}
	return &types.DailyLog{
		ID:        rec.ID,
		ProfileID: rec.ProfileID,
		Day:       rec.Day,
		Consumed: types.Nutrients{
			Calories: rec.CaloriesConsumed,
			ProteinG: rec.ProteinConsumed,
			CarbsG:   rec.CarbsConsumed,
			FatG:     rec.FatConsumed,
		},
		WaterLiters:    rec.WaterLiters,
		CaloriesBurned: rec.CaloriesBurned,
		Notes:          rec.Notes,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func mealToDomain(rec *MealRecord) types.Meal {
	return types.Meal{
		ID:         rec.ID,
		DailyLogID: rec.DailyLogID,
		MealType:   types.MealType(rec.MealType),
		Name:       rec.Name,
		Totals: types.Nutrients{
			Calories: rec.Calories,
			ProteinG: rec.ProteinG,
			CarbsG:   rec.CarbsG,
			FatG:     rec.FatG,
		},
	}
}

func consumedToDomain(rec *ConsumedFoodRecord) types.ConsumedFood {
	return types.ConsumedFood{
		ID:       rec.ID,
		MealID:   rec.MealID,
		FoodID:   rec.FoodID,
		FoodName: rec.FoodName,
		Grams:    rec.Grams,
		Nutrients: types.Nutrients{
			Calories: rec.Calories,
			ProteinG: rec.ProteinG,
			CarbsG:   rec.CarbsG,
			FatG:     rec.FatG,
		},
		LoggedAt: rec.LoggedAt,
	}
}

func exerciseToDomain(rec *ExerciseEntryRecord) types.ExerciseEntry {
	return types.ExerciseEntry{
		ID:              rec.ID,
		DailyLogID:      rec.DailyLogID,
		ExerciseID:      rec.ExerciseID,
		ExerciseName:    rec.ExerciseName,
		DurationMinutes: rec.DurationMinutes,
		CaloriesBurned:  rec.CaloriesBurned,
		Notes:           rec.Notes,
		LoggedAt:        rec.LoggedAt,
	}
}
