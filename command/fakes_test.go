package command

import (
	"context"
	"errors"
	"strings"
	"time"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

type recordingActivitySink struct {
	onLog   func(types.ActivityRecord)
	records []types.ActivityRecord
}

func (r *recordingActivitySink) Log(_ context.Context, record types.ActivityRecord) error {
	r.records = append(r.records, record)
	if r.onLog != nil {
		r.onLog(record)
	}
	return nil
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}

// plainHasher prefixes passwords so tests can assert on stored hashes.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeAccounts struct {
	accounts map[uuid.UUID]*types.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: make(map[uuid.UUID]*types.Account)}
}

func (f *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (*types.Account, error) {
	if acc, ok := f.accounts[id]; ok {
		dup := *acc
		return &dup, nil
	}
	return nil, types.ErrAccountNotFound
}

func (f *fakeAccounts) GetByIdentifier(_ context.Context, identifier string) (*types.Account, error) {
	for _, acc := range f.accounts {
		if strings.EqualFold(acc.Email, identifier) || acc.Username == identifier {
			dup := *acc
			return &dup, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (f *fakeAccounts) Create(_ context.Context, account *types.Account) (*types.Account, error) {
	dup := *account
	if dup.ID == uuid.Nil {
		dup.ID = uuid.New()
	}
	f.accounts[dup.ID] = &dup
	out := dup
	return &out, nil
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	acc, ok := f.accounts[id]
	if !ok {
		return types.ErrAccountNotFound
	}
	acc.PasswordHash = hash
	return nil
}

type fakeProfiles struct {
	profiles     map[uuid.UUID]*types.Profile
	goalChanges  []types.GoalChange
	measurements []types.BodyMeasurement
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[uuid.UUID]*types.Profile)}
}

func (f *fakeProfiles) add(p types.Profile) *types.Profile {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.UserID] = &p
	return &p
}

func (f *fakeProfiles) GetProfile(_ context.Context, id uuid.UUID) (*types.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			dup := *p
			return &dup, nil
		}
	}
	return nil, types.ErrProfileNotFound
}

func (f *fakeProfiles) GetProfileByUser(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		dup := *p
		return &dup, nil
	}
	return nil, types.ErrProfileNotFound
}

func (f *fakeProfiles) CreateProfile(_ context.Context, p types.Profile) (*types.Profile, error) {
	if existing, ok := f.profiles[p.UserID]; ok {
		dup := *existing
		return &dup, nil
	}
	return f.add(p), nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, p types.Profile) (*types.Profile, *types.GoalChange, error) {
	existing, ok := f.profiles[p.UserID]
	if !ok {
		return nil, nil, types.ErrProfileNotFound
	}
	var change *types.GoalChange
	if existing.Goal != p.Goal {
		change = &types.GoalChange{
			ID:           uuid.New(),
			ProfileID:    p.ID,
			PreviousGoal: existing.Goal,
			NewGoal:      p.Goal,
		}
		f.goalChanges = append(f.goalChanges, *change)
	}
	dup := p
	f.profiles[p.UserID] = &dup
	out := dup
	return &out, change, nil
}

func (f *fakeProfiles) ListGoalHistory(_ context.Context, profileID uuid.UUID) ([]types.GoalChange, error) {
	var out []types.GoalChange
	for _, c := range f.goalChanges {
		if c.ProfileID == profileID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeProfiles) AddMeasurement(_ context.Context, m types.BodyMeasurement) (*types.BodyMeasurement, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.measurements = append(f.measurements, m)
	return &m, nil
}

func (f *fakeProfiles) ListMeasurements(_ context.Context, profileID uuid.UUID, _ types.Pagination) ([]types.BodyMeasurement, int, error) {
	var out []types.BodyMeasurement
	for _, m := range f.measurements {
		if m.ProfileID == profileID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

type fakeMacros struct {
	records []types.MacroRecord
	err     error
}

func (f *fakeMacros) RecordAndActivate(_ context.Context, profileID uuid.UUID, result types.MacroResult, computedOn time.Time) (*types.MacroRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].ProfileID == profileID {
			f.records[i].Active = false
		}
	}
	rec := types.MacroRecord{
		ID:            uuid.New(),
		ProfileID:     profileID,
		CaloriesDaily: float64(result.CaloriesDaily),
		ProteinG:      result.ProteinG,
		CarbsG:        result.CarbsG,
		FatG:          result.FatG,
		ComputedOn:    computedOn,
		Active:        true,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeMacros) GetActive(_ context.Context, profileID uuid.UUID) (*types.MacroRecord, error) {
	for i := range f.records {
		if f.records[i].ProfileID == profileID && f.records[i].Active {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, types.ErrMacrosNotFound
}

func (f *fakeMacros) ListHistory(_ context.Context, profileID uuid.UUID, _ types.Pagination) (types.MacroHistoryPage, error) {
	page := types.MacroHistoryPage{}
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].ProfileID == profileID {
			page.Records = append(page.Records, f.records[i])
		}
	}
	page.Total = len(page.Records)
	return page, nil
}

type fakeCatalog struct {
	foods     map[uuid.UUID]types.Food
	exercises map[uuid.UUID]types.Exercise
	recipes   []types.Recipe
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		foods:     make(map[uuid.UUID]types.Food),
		exercises: make(map[uuid.UUID]types.Exercise),
	}
}

func (f *fakeCatalog) ListCategories(context.Context) ([]types.FoodCategory, error) {
	return nil, nil
}

func (f *fakeCatalog) CreateCategory(_ context.Context, c types.FoodCategory) (*types.FoodCategory, error) {
	return &c, nil
}

func (f *fakeCatalog) ListFoods(_ context.Context, filter types.FoodFilter) (types.FoodPage, error) {
	page := types.FoodPage{}
	for _, food := range f.foods {
		if filter.Keyword == "" || strings.Contains(strings.ToLower(food.Name), strings.ToLower(filter.Keyword)) {
			page.Foods = append(page.Foods, food)
		}
	}
	page.Total = len(page.Foods)
	return page, nil
}

func (f *fakeCatalog) GetFood(_ context.Context, id uuid.UUID) (*types.Food, error) {
	if food, ok := f.foods[id]; ok {
		return &food, nil
	}
	return nil, types.ErrFoodNotFound
}

func (f *fakeCatalog) GetFoods(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]types.Food, error) {
	out := make(map[uuid.UUID]types.Food, len(ids))
	for _, id := range ids {
		if food, ok := f.foods[id]; ok {
			out[id] = food
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreateFood(_ context.Context, food types.Food) (*types.Food, error) {
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	f.foods[food.ID] = food
	return &food, nil
}

func (f *fakeCatalog) ListRecipes(_ context.Context, filter types.RecipeFilter) (types.RecipePage, error) {
	page := types.RecipePage{}
	for _, r := range f.recipes {
		if filter.OwnerID == uuid.Nil || r.OwnerID == filter.OwnerID {
			page.Recipes = append(page.Recipes, r)
		}
	}
	page.Total = len(page.Recipes)
	return page, nil
}

func (f *fakeCatalog) GetRecipe(_ context.Context, id uuid.UUID) (*types.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, types.ErrRecipeNotFound
}

func (f *fakeCatalog) CreateRecipe(_ context.Context, recipe types.Recipe) (*types.Recipe, error) {
	for _, ing := range recipe.Ingredients {
		if _, ok := f.foods[ing.FoodID]; !ok {
			return nil, types.ErrFoodNotFound
		}
	}
	recipe.ID = uuid.New()
	f.recipes = append(f.recipes, recipe)
	return &recipe, nil
}

func (f *fakeCatalog) ListExercises(context.Context, string) ([]types.Exercise, error) {
	out := make([]types.Exercise, 0, len(f.exercises))
	for _, ex := range f.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (f *fakeCatalog) GetExercise(_ context.Context, id uuid.UUID) (*types.Exercise, error) {
	if ex, ok := f.exercises[id]; ok {
		return &ex, nil
	}
	return nil, types.ErrExerciseNotFound
}

func (f *fakeCatalog) CreateExercise(_ context.Context, ex types.Exercise) (*types.Exercise, error) {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	f.exercises[ex.ID] = ex
	return &ex, nil
}

type fakeIntake struct {
	foods     []types.FoodLogEntry
	exercises []types.ExerciseLogEntry
	water     float64
	log       types.DailyLog
}

func (f *fakeIntake) LogFood(_ context.Context, entry types.FoodLogEntry) (*types.DailyLog, error) {
	f.foods = append(f.foods, entry)
	f.touch(entry.ProfileID, entry.Day)
	f.log.Consumed = f.log.Consumed.Add(entry.Nutrients)
	log := f.log
	return &log, nil
}

func (f *fakeIntake) LogWater(_ context.Context, profileID uuid.UUID, day time.Time, liters float64) (*types.DailyLog, error) {
	f.touch(profileID, day)
	f.water += liters
	f.log.WaterLiters = f.water
	log := f.log
	return &log, nil
}

func (f *fakeIntake) LogExercise(_ context.Context, entry types.ExerciseLogEntry) (*types.DailyLog, error) {
	f.exercises = append(f.exercises, entry)
	f.touch(entry.ProfileID, entry.Day)
	f.log.CaloriesBurned += entry.CaloriesBurned
	log := f.log
	return &log, nil
}

func (f *fakeIntake) GetDay(_ context.Context, profileID uuid.UUID, day time.Time) (*types.DailyDetail, error) {
	if f.log.ID == uuid.Nil || f.log.ProfileID != profileID || !f.log.Day.Equal(day) {
		return nil, types.ErrDailyLogNotFound
	}
	return &types.DailyDetail{Log: f.log}, nil
}

func (f *fakeIntake) touch(profileID uuid.UUID, day time.Time) {
	if f.log.ID == uuid.Nil {
		f.log.ID = uuid.New()
	}
	f.log.ProfileID = profileID
	f.log.Day = day
}

type fakeChat struct {
	active   *types.Conversation
	messages map[uuid.UUID][]types.ChatMessage
	closed   int
}

func newFakeChat() *fakeChat {
	return &fakeChat{messages: make(map[uuid.UUID][]types.ChatMessage)}
}

func (f *fakeChat) ActiveConversation(_ context.Context, userID uuid.UUID) (*types.Conversation, error) {
	if f.active == nil || f.active.UserID != userID {
		return nil, types.ErrConversationNotFound
	}
	conv := *f.active
	return &conv, nil
}

func (f *fakeChat) AppendExchange(_ context.Context, userID uuid.UUID, messages []types.ChatMessage) (*types.ChatTranscript, error) {
	if f.active == nil {
		f.active = &types.Conversation{ID: uuid.New(), UserID: userID, Active: true}
	}
	for _, m := range messages {
		m.ID = uuid.New()
		m.ConversationID = f.active.ID
		f.messages[f.active.ID] = append(f.messages[f.active.ID], m)
	}
	return &types.ChatTranscript{
		Conversation: *f.active,
		Messages:     append([]types.ChatMessage(nil), f.messages[f.active.ID]...),
	}, nil
}

func (f *fakeChat) ListMessages(_ context.Context, conversationID uuid.UUID) ([]types.ChatMessage, error) {
	return append([]types.ChatMessage(nil), f.messages[conversationID]...), nil
}

func (f *fakeChat) CloseActive(context.Context, uuid.UUID) error {
	f.closed++
	f.active = nil
	return nil
}

type recordingResponder struct {
	prompts []types.ChatPrompt
}

func (r *recordingResponder) Respond(_ context.Context, prompt types.ChatPrompt) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return "reply to " + prompt.Message, nil
}

type fakeSettings struct {
	records map[string]types.SettingRecord
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{records: make(map[string]types.SettingRecord)}
}

func (f *fakeSettings) ListSettings(_ context.Context, filter types.SettingFilter) ([]types.SettingRecord, error) {
	var out []types.SettingRecord
	for _, rec := range f.records {
		if rec.UserID == filter.UserID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeSettings) UpsertSetting(_ context.Context, rec types.SettingRecord) (*types.SettingRecord, error) {
	rec.Key = strings.ToLower(strings.TrimSpace(rec.Key))
	k := rec.UserID.String() + "/" + rec.Key
	prev := f.records[k]
	rec.Version = prev.Version + 1
	f.records[k] = rec
	return &rec, nil
}

func (f *fakeSettings) DeleteSetting(_ context.Context, userID uuid.UUID, key string) error {
	k := userID.String() + "/" + key
	if _, ok := f.records[k]; !ok {
		return errors.New("not found")
	}
	delete(f.records, k)
	return nil
}
