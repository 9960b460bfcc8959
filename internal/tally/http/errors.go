package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// Response messages. Clients match on these strings, so they must not drift.
const (
	MsgCredentialsRequired   = "Username and password are required."
	MsgUsernameTaken         = "Username is already taken."
	MsgRegistered            = "User registered successfully!"
	MsgInvalidCredentials    = "Invalid username or password."
	MsgLoginSuccessful       = "Login successful!"
	MsgEntryFieldsRequired   = "All fields are required except savings."
	MsgUserNotFound          = "User not found."
	MsgMonthExists           = "Data for this month already exists."
	MsgEntryAdded            = "Finance data added successfully!"
	MsgUsernameRequired      = "Username is required."
	MsgMonthNotFound         = "Data for this month not found."
	MsgEntryUpdated          = "Finance data updated successfully!"
	MsgUsernameMonthRequired = "Username and month are required."
	MsgEntryDeleted          = "Finance data deleted successfully!"
	MsgPasswordTooLong       = "Password must be at most 72 bytes."
	MsgInvalidJSON           = "Request body must be valid JSON."
	MsgInternal              = "Internal server error. Please try again later."
	MsgAccessDenied          = "Access denied."
)

// maxBodyBytes caps request bodies; every body here is a handful of fields.
const maxBodyBytes = 1 << 20

var errorMessages = []struct {
	err error
	msg string
}{
	{service.ErrCredentialsRequired, MsgCredentialsRequired},
	{service.ErrPasswordTooLong, MsgPasswordTooLong},
	{service.ErrUsernameTaken, MsgUsernameTaken},
	{service.ErrInvalidCredentials, MsgInvalidCredentials},
	{service.ErrEntryFieldsRequired, MsgEntryFieldsRequired},
	{service.ErrUsernameRequired, MsgUsernameRequired},
	{service.ErrUsernameMonthRequired, MsgUsernameMonthRequired},
	{service.ErrUserNotFound, MsgUserNotFound},
	{service.ErrMonthAlreadyExists, MsgMonthExists},
	{service.ErrMonthNotFound, MsgMonthNotFound},
}

// writeServiceError maps a service error onto the response. Every known
// client error is a 400; anything else is logged and becomes a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			httpx.WriteError(w, http.StatusBadRequest, m.msg)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, MsgInternal)
}

// decodeBody reads a JSON body into dst. An empty body leaves dst zeroed so
// the missing fields are reported by validation instead.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	slogx.FromContext(r.Context()).Info("invalid request body", slog.Any("error", err))
	httpx.WriteError(w, http.StatusBadRequest, MsgInvalidJSON)
	return false
}
