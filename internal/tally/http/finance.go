package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
)

type FinanceHandler struct {
	FinanceService *service.FinanceService

	// RequireAuth makes every request carry a token for the username it
	// names. AuthnMiddleware must run first when set.
	RequireAuth bool
}

// owns reports whether the caller may act for username, writing a 403 when
// it may not. Empty usernames are left to validation.
func (h *FinanceHandler) owns(w http.ResponseWriter, r *http.Request, username string) bool {
	if !h.RequireAuth || username == "" {
		return true
	}

	claims, ok := httpx.ClaimsFromContext(r.Context())
	if ok && claims.Username == username {
		return true
	}

	slogx.FromContext(r.Context()).Warn("finance access denied",
		slog.String("token_username", claims.Username),
	)
	httpx.WriteError(w, http.StatusForbidden, MsgAccessDenied)
	return false
}

func entryInput(req tallysdk.FinanceRequest) service.EntryInput {
	return service.EntryInput{
		Username: req.Username,
		Month:    req.Month,
		Income:   req.Income,
		Expenses: req.Expenses,
		Savings:  req.Savings,
	}
}

// HandleAdd stores a new month of finance data
//
//	@Summary		Add finance data
//	@Description	Appends the entry for a month. Savings left out or sent as 0 are stored as income - expenses.
//	@Tags			Finance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tallysdk.FinanceRequest		true	"Entry to add"
//	@Success		201		{object}	tallysdk.MessageResponse	"Finance data added successfully!"
//	@Failure		400		{object}	tallysdk.ErrorResponse		"Missing fields, unknown user or month already present"
//	@Failure		403		{object}	tallysdk.ErrorResponse		"Token does not belong to username"
//	@Failure		500		{object}	tallysdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/add-finance [post].
func (h *FinanceHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.FinanceRequest
	if !decodeBody(w, r, &req) || !h.owns(w, r, req.Username) {
		return
	}

	if err := h.FinanceService.AddEntry(r.Context(), entryInput(req)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, MsgEntryAdded)
}

// HandleGet lists a user's finance data
//
//	@Summary		Get finance data
//	@Description	Returns every entry of the user in the order they were added.
//	@Tags			Finance
//	@Produce		json
//	@Param			username	query		string					true	"Account username"
//	@Success		200			{array}		tallysdk.FinanceEntry	"Entries, possibly empty"
//	@Failure		400			{object}	tallysdk.ErrorResponse	"Missing username or unknown user"
//	@Failure		403			{object}	tallysdk.ErrorResponse	"Token does not belong to username"
//	@Failure		500			{object}	tallysdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/getfinancedata [get].
func (h *FinanceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if !h.owns(w, r, username) {
		return
	}

	entries, err := h.FinanceService.GetEntries(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]tallysdk.FinanceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, tallysdk.FinanceEntry{
			Month:    e.Month,
			Income:   e.Income,
			Expenses: e.Expenses,
			Savings:  e.Savings,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate overwrites a month of finance data
//
//	@Summary		Update finance data
//	@Description	Replaces income, expenses and savings for an existing month.
//	@Description	Savings are recomputed as income - expenses when left out, sent as 0,
//	@Description	or when income or expenses differ from the stored values.
//	@Tags			Finance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tallysdk.FinanceRequest		true	"Entry to update"
//	@Success		200		{object}	tallysdk.MessageResponse	"Finance data updated successfully!"
//	@Failure		400		{object}	tallysdk.ErrorResponse		"Missing fields, unknown user or unknown month"
//	@Failure		403		{object}	tallysdk.ErrorResponse		"Token does not belong to username"
//	@Failure		500		{object}	tallysdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/update-finance [put].
func (h *FinanceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.FinanceRequest
	if !decodeBody(w, r, &req) || !h.owns(w, r, req.Username) {
		return
	}

	if err := h.FinanceService.UpdateEntry(r.Context(), entryInput(req)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, MsgEntryUpdated)
}

// HandleDelete removes a month of finance data
//
//	@Summary		Delete finance data
//	@Description	Removes every entry for the month. Succeeds even when the month has no entry.
//	@Tags			Finance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tallysdk.DeleteFinanceRequest	true	"Month to delete"
//	@Success		200		{object}	tallysdk.MessageResponse		"Finance data deleted successfully!"
//	@Failure		400		{object}	tallysdk.ErrorResponse			"Missing fields or unknown user"
//	@Failure		403		{object}	tallysdk.ErrorResponse			"Token does not belong to username"
//	@Failure		500		{object}	tallysdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/delete-finance [delete].
func (h *FinanceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.DeleteFinanceRequest
	if !decodeBody(w, r, &req) || !h.owns(w, r, req.Username) {
		return
	}

	if err := h.FinanceService.DeleteEntry(r.Context(), req.Username, req.Month); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, MsgEntryDeleted)
}
