package types

import "errors"

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("macromate: actor reference required")
	// ErrUserIDRequired indicates a user identifier was omitted.
	ErrUserIDRequired = errors.New("macromate: user id required")
	// ErrProfileIDRequired indicates a profile identifier was omitted.
	ErrProfileIDRequired = errors.New("macromate: profile id required")
	// ErrUnauthorized indicates the actor may not act on the target user.
	ErrUnauthorized = errors.New("macromate: actor not authorized")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("macromate: service not ready")

	// ErrProfileNotFound indicates no profile exists for the user.
	ErrProfileNotFound = errors.New("macromate: profile not found")
	// ErrMacrosNotFound indicates the profile has no active macro record.
	ErrMacrosNotFound = errors.New("macromate: no active macros")
	// ErrFoodNotFound indicates a catalog food lookup failed.
	ErrFoodNotFound = errors.New("macromate: food not found")
	// ErrRecipeNotFound indicates a recipe lookup failed.
	ErrRecipeNotFound = errors.New("macromate: recipe not found")
	// ErrExerciseNotFound indicates a catalog exercise lookup failed.
	ErrExerciseNotFound = errors.New("macromate: exercise not found")
	// ErrDailyLogNotFound indicates nothing was logged for the day.
	ErrDailyLogNotFound = errors.New("macromate: daily log not found")
	// ErrConversationNotFound indicates the user has no active conversation.
	ErrConversationNotFound = errors.New("macromate: conversation not found")
	// ErrAccountNotFound indicates the upstream user does not exist.
	ErrAccountNotFound = errors.New("macromate: account not found")

	// ErrInvalidGender indicates an unknown gender value.
	ErrInvalidGender = errors.New("macromate: invalid gender")
	// ErrInvalidActivityLevel indicates an unknown activity level.
	ErrInvalidActivityLevel = errors.New("macromate: invalid activity level")
	// ErrInvalidGoal indicates an unknown goal.
	ErrInvalidGoal = errors.New("macromate: invalid goal")
	// ErrInvalidMealType indicates an unknown meal type.
	ErrInvalidMealType = errors.New("macromate: invalid meal type")

	// ErrMissingProfileRepository occurs when profile commands lack a storage backend.
	ErrMissingProfileRepository = errors.New("macromate: missing profile repository")
	// ErrMissingMacroRepository occurs when macro commands lack a storage backend.
	ErrMissingMacroRepository = errors.New("macromate: missing macro repository")
	// ErrMissingMeasurementRepository occurs when measurement handlers lack storage.
	ErrMissingMeasurementRepository = errors.New("macromate: missing measurement repository")
	// ErrMissingCatalogRepository occurs when catalog handlers lack storage.
	ErrMissingCatalogRepository = errors.New("macromate: missing catalog repository")
	// ErrMissingIntakeRepository occurs when intake handlers lack storage.
	ErrMissingIntakeRepository = errors.New("macromate: missing intake repository")
	// ErrMissingChatRepository occurs when chat handlers lack storage.
	ErrMissingChatRepository = errors.New("macromate: missing chat repository")
	// ErrMissingSettingRepository occurs when setting handlers lack storage.
	ErrMissingSettingRepository = errors.New("macromate: missing setting repository")
	// ErrMissingSettingsResolver occurs when setting queries lack a resolver.
	ErrMissingSettingsResolver = errors.New("macromate: missing settings resolver")
	// ErrMissingAccountRepository occurs when account commands lack an upstream store.
	ErrMissingAccountRepository = errors.New("macromate: missing account repository")
	// ErrMissingActivitySink occurs when no activity sink was supplied.
	ErrMissingActivitySink = errors.New("macromate: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("macromate: missing activity repository")
)
