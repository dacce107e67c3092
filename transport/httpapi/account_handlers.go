package httpapi

import (
	"net/http"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
)

type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type accountView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type registerResponse struct {
	Account accountView    `json:"account"`
	Profile *types.Profile `json:"profile,omitempty"`
}

func (a *API) register(c router.Context) error {
	var req registerRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	result := &command.AccountRegisterResult{}
	err := a.commands.AccountRegister.Execute(c.Context(), command.AccountRegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Result:          result,
	})
	if err != nil {
		return a.fail(c, err)
	}
	resp := registerResponse{Profile: result.Profile}
	if result.Account != nil {
		resp.Account = accountView{
			ID:       result.Account.ID,
			Email:    result.Account.Email,
			Username: result.Account.Username,
			Role:     result.Account.Role,
		}
	}
	return c.JSON(http.StatusCreated, resp)
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (a *API) changePassword(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req passwordRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	err = a.commands.PasswordChange.Execute(c.Context(), command.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		PasswordConfirm: req.PasswordConfirm,
		Actor:           actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
