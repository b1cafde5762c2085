package http

import (
	"net/http"

	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/middleware"
)

// SessionHandler reports the resolved session state for the presented
// token so clients can drive their authenticated/anonymous UI from one
// explicit value instead of ambient provider state.
type SessionHandler struct{}

type sessionResponse struct {
	State   identity.State `json:"state"`
	Subject string         `json:"subject"`
	Name    string         `json:"name,omitempty"`
	Email   string         `json:"email,omitempty"`
}

// Resolve handles POST /api/session.
func (h *SessionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{
		State:   ident.State,
		Subject: ident.Subject,
		Name:    ident.Name,
		Email:   ident.Email,
	})
}
