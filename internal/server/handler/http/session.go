// Package http provides HTTP handlers for the Heartbible Connect API:
// session entry, reminder CRUD, catalog lookup, and statistics.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/heartbible/connect/internal/service"
)

// IdentityService defines the identity operations required by the
// SessionHandler.
type IdentityService interface {
	// ResolveOrCreate upserts the user record for dni and reports whether
	// a new account was created.
	ResolveOrCreate(ctx context.Context, dni string) (bool, error)
}

// SessionHandler handles HTTP requests for identity resolution.
type SessionHandler struct {
	// IdentityService performs the underlying identity operations.
	IdentityService IdentityService
}

// SessionRequest represents the JSON payload for session entry. Either the
// free-text Dni field or the Country/Document pair must be set.
type SessionRequest struct {
	Dni      string `json:"dni"`
	Country  string `json:"country"`
	Document string `json:"document"`
}

// SessionResponse reports the resolved identifier and whether this session
// created a new account.
type SessionResponse struct {
	Dni        string `json:"dni"`
	NewAccount bool   `json:"newAccount"`
}

// Open handles POST /api/session requests. It resolves the identifier,
// upserts the user record, and answers with the scoping dni the client
// should carry to the reminders view. A store failure keeps the user on
// the entry screen with a generic error.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var (
		dni string
		err error
	)
	if req.Dni != "" {
		dni, err = service.ResolveFree(req.Dni)
	} else {
		dni, err = service.Resolve(req.Country, req.Document)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.IdentityService.ResolveOrCreate(r.Context(), dni)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SessionResponse{Dni: dni, NewAccount: created})
}
