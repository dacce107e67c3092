package command

import (
	"errors"

	"github.com/macromate/go-macromate/pkg/types"
)

const minPasswordLength = 8

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = types.ErrActorRequired
	// ErrUserIDRequired indicates the command lacks a target user.
	ErrUserIDRequired = types.ErrUserIDRequired
	// ErrSignupDisabled indicates self-registration is disabled via feature gate.
	ErrSignupDisabled = errors.New("macromate: signup disabled")
	// ErrChatDisabled indicates the assistant chat is disabled via feature gate.
	ErrChatDisabled = errors.New("macromate: chat disabled")
	// ErrEmailRequired occurs when registration omits a valid email address.
	ErrEmailRequired = errors.New("macromate: valid email required")
	// ErrUsernameRequired occurs when registration omits the username.
	ErrUsernameRequired = errors.New("macromate: username required")
	// ErrAccountExists indicates the email or username is already registered.
	ErrAccountExists = errors.New("macromate: account already exists")
	// ErrPasswordTooShort indicates the password is shorter than eight characters.
	ErrPasswordTooShort = errors.New("macromate: password must be at least 8 characters")
	// ErrPasswordMismatch indicates the confirmation does not match the password.
	ErrPasswordMismatch = errors.New("macromate: password confirmation does not match")
	// ErrPasswordUnchanged indicates the new password equals the current one.
	ErrPasswordUnchanged = errors.New("macromate: new password must differ from current password")
	// ErrCurrentPasswordInvalid indicates the current password did not verify.
	ErrCurrentPasswordInvalid = errors.New("macromate: current password is incorrect")
	// ErrMissingPasswordHasher occurs when account commands lack a hasher.
	ErrMissingPasswordHasher = errors.New("macromate: missing password hasher")
	// ErrInvalidWeight indicates a non-positive weight.
	ErrInvalidWeight = errors.New("macromate: weight must be greater than zero")
	// ErrInvalidHeight indicates a non-positive height.
	ErrInvalidHeight = errors.New("macromate: height must be greater than zero")
	// ErrInvalidBodyFat indicates a body fat percentage outside (0, 100).
	ErrInvalidBodyFat = errors.New("macromate: body fat percentage out of range")
	// ErrInvalidBirthDate indicates a birth date in the future.
	ErrInvalidBirthDate = errors.New("macromate: birth date cannot be in the future")
	// ErrRecipeNameRequired occurs when a recipe has no name.
	ErrRecipeNameRequired = errors.New("macromate: recipe name required")
	// ErrIngredientsRequired occurs when a recipe has no ingredients.
	ErrIngredientsRequired = errors.New("macromate: recipe requires at least one ingredient")
	// ErrFoodIDRequired occurs when a diary entry omits the food.
	ErrFoodIDRequired = errors.New("macromate: food id required")
	// ErrExerciseIDRequired occurs when a diary entry omits the exercise.
	ErrExerciseIDRequired = errors.New("macromate: exercise id required")
	// ErrInvalidGrams indicates a non-positive quantity.
	ErrInvalidGrams = errors.New("macromate: quantity must be greater than zero")
	// ErrInvalidLiters indicates a non-positive amount of water.
	ErrInvalidLiters = errors.New("macromate: water amount must be greater than zero")
	// ErrInvalidDuration indicates a non-positive exercise duration.
	ErrInvalidDuration = errors.New("macromate: duration must be greater than zero")
	// ErrMessageRequired occurs when a chat message is blank.
	ErrMessageRequired = errors.New("macromate: message required")
	// ErrMissingResponder occurs when chat commands lack a responder.
	ErrMissingResponder = errors.New("macromate: missing chat responder")
	// ErrSettingKeyRequired indicates the setting key was missing.
	ErrSettingKeyRequired = errors.New("macromate: setting key required")
	// ErrSettingValueRequired indicates the setting value payload was missing.
	ErrSettingValueRequired = errors.New("macromate: setting value required")
)
