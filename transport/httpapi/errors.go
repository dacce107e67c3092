package httpapi

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/catalog"
	"github.com/macromate/go-macromate/chat"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
)

const (
	textCodeMacrosNotCalculated = "MACROS_NOT_CALCULATED"
	textCodeProfileRequired     = "PROFILE_REQUIRED"
	textCodeInvalidRequest      = "INVALID_REQUEST"
)

type errorMapping struct {
	target   error
	category goerrors.Category
	code     int
	textCode string
}

var errorMappings = []errorMapping{
	{types.ErrActorRequired, goerrors.CategoryAuth, http.StatusUnauthorized, "ACTOR_REQUIRED"},
	{types.ErrUnauthorized, goerrors.CategoryAuthz, http.StatusForbidden, "FORBIDDEN"},
	{command.ErrSignupDisabled, goerrors.CategoryAuthz, http.StatusForbidden, "SIGNUP_DISABLED"},
	{command.ErrChatDisabled, goerrors.CategoryAuthz, http.StatusForbidden, "CHAT_DISABLED"},
	{command.ErrCurrentPasswordInvalid, goerrors.CategoryAuth, http.StatusUnauthorized, "CURRENT_PASSWORD_INVALID"},
	{command.ErrAccountExists, goerrors.CategoryValidation, http.StatusConflict, "ACCOUNT_EXISTS"},

	{types.ErrMacrosNotFound, goerrors.CategoryNotFound, http.StatusNotFound, textCodeMacrosNotCalculated},
	{types.ErrProfileNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
	{types.ErrFoodNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "FOOD_NOT_FOUND"},
	{types.ErrRecipeNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "RECIPE_NOT_FOUND"},
	{types.ErrExerciseNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "EXERCISE_NOT_FOUND"},
	{types.ErrAccountNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{types.ErrDailyLogNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "DAILY_LOG_NOT_FOUND"},
	{types.ErrConversationNotFound, goerrors.CategoryNotFound, http.StatusNotFound, "CONVERSATION_NOT_FOUND"},

	{types.ErrInvalidGender, goerrors.CategoryValidation, http.StatusBadRequest, "INVALID_GENDER"},
	{types.ErrInvalidActivityLevel, goerrors.CategoryValidation, http.StatusBadRequest, "INVALID_ACTIVITY_LEVEL"},
	{types.ErrInvalidGoal, goerrors.CategoryValidation, http.StatusBadRequest, "INVALID_GOAL"},
	{types.ErrInvalidMealType, goerrors.CategoryValidation, http.StatusBadRequest, "INVALID_MEAL_TYPE"},
	{types.ErrUserIDRequired, goerrors.CategoryValidation, http.StatusBadRequest, "USER_ID_REQUIRED"},
	{catalog.ErrNameRequired, goerrors.CategoryValidation, http.StatusBadRequest, "NAME_REQUIRED"},
	{catalog.ErrIngredientsRequired, goerrors.CategoryValidation, http.StatusBadRequest, "INGREDIENTS_REQUIRED"},
	{catalog.ErrInvalidQuantity, goerrors.CategoryValidation, http.StatusBadRequest, "INVALID_QUANTITY"},
	{chat.ErrEmptyMessage, goerrors.CategoryValidation, http.StatusBadRequest, "MESSAGE_REQUIRED"},
}

var validationErrors = []error{
	command.ErrEmailRequired,
	command.ErrUsernameRequired,
	command.ErrPasswordTooShort,
	command.ErrPasswordMismatch,
	command.ErrPasswordUnchanged,
	command.ErrInvalidWeight,
	command.ErrInvalidHeight,
	command.ErrInvalidBodyFat,
	command.ErrInvalidBirthDate,
	command.ErrRecipeNameRequired,
	command.ErrIngredientsRequired,
	command.ErrFoodIDRequired,
	command.ErrExerciseIDRequired,
	command.ErrInvalidGrams,
	command.ErrInvalidLiters,
	command.ErrInvalidDuration,
	command.ErrMessageRequired,
	command.ErrSettingKeyRequired,
	command.ErrSettingValueRequired,
}

// toRichError converts domain errors into go-errors values carrying the HTTP
// status in Code. Rich errors pass through untouched.
func toRichError(err error) *goerrors.Error {
	if repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "macromate: record not found").
			WithCode(http.StatusNotFound).
			WithTextCode("NOT_FOUND")
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return goerrors.Wrap(err, m.category, err.Error()).
				WithCode(m.code).
				WithTextCode(m.textCode)
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
				WithCode(http.StatusBadRequest).
				WithTextCode(textCodeInvalidRequest)
		}
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "macromate: request failed").
		WithCode(http.StatusInternalServerError).
		WithTextCode("INTERNAL")
}

func badRequest(err error, msg string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCodeInvalidRequest)
}

func statusFor(rich *goerrors.Error) int {
	if rich.Code >= 400 && rich.Code <= 599 {
		return rich.Code
	}
	switch rich.Category {
	case goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Code     int    `json:"code"`
	TextCode string `json:"text_code,omitempty"`
	Message  string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (a *API) fail(c router.Context, err error) error {
	rich := toRichError(err)
	status := statusFor(rich)
	if status >= http.StatusInternalServerError {
		a.logger.Error("httpapi: request failed", err)
	}
	return c.JSON(status, errorResponse{Error: errorBody{
		Code:     status,
		TextCode: rich.TextCode,
		Message:  rich.Message,
	}})
}
