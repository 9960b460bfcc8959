package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
)

type AccountHandler struct {
	AccountService *service.AccountService
}

// HandleSignup registers a new account
//
//	@Summary		Register an account
//	@Description	Creates an account with a bcrypt hashed password and no finance data.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tallysdk.CredentialsRequest	true	"Username and password"
//	@Success		201		{object}	tallysdk.MessageResponse	"User registered successfully!"
//	@Failure		400		{object}	tallysdk.ErrorResponse		"Missing fields, username taken or password too long"
//	@Failure		429		{object}	tallysdk.ErrorResponse		"Too many requests"
//	@Failure		500		{object}	tallysdk.ErrorResponse		"Internal server error"
//	@Router			/signup [post].
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AccountService.Register(r.Context(), req.Username, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, MsgRegistered)
}

// HandleLogin exchanges credentials for an access token
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns an HS256 JWT valid for one hour.
//	@Description	Unknown usernames and wrong passwords produce the same error.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tallysdk.CredentialsRequest	true	"Username and password"
//	@Success		200		{object}	tallysdk.LoginResponse		"Login successful!"
//	@Failure		400		{object}	tallysdk.ErrorResponse		"Missing fields or invalid credentials"
//	@Failure		429		{object}	tallysdk.ErrorResponse		"Too many requests"
//	@Failure		500		{object}	tallysdk.ErrorResponse		"Internal server error"
//	@Router			/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.AccountService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.LoginResponse{
		Message: MsgLoginSuccessful,
		Token:   token,
	})
}
