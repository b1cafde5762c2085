// Package http provides the HTTP handlers and routing for the Playback
// press-kit service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/middleware"
	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/qr"
	"github.com/playbackhq/playback/internal/sections"
	"github.com/playbackhq/playback/internal/service"
)

var validate = validator.New()

// EditorSession is the editor-side service interface required by the
// EditorHandler: one in-memory draft per identity, mutators that apply
// to the draft only, and an explicit whole-document save.
type EditorSession interface {
	Load(ctx context.Context, ident identity.Identity) (*models.Profile, error)
	Draft(subject string) (*models.Profile, bool)
	Save(ctx context.Context, subject string) error

	MoveSection(subject string, index int, dir sections.Direction) error
	ToggleSection(subject string, index int) error
	AddCustomSection(subject string) error
	DeleteSection(subject string, index int) error
	UpdateSectionField(subject, id, field, value string) error

	AddSong(subject string) error
	RemoveSong(subject, id string) error
	UpdateSong(subject, id, field, value string) error
	AddTour(subject string) error
	RemoveTour(subject, id string) error
	UpdateTour(subject, id, field, value string) error
	AddVideo(subject string) error
	RemoveVideo(subject, id string) error
	UpdateVideo(subject, id, field, value string) error
	AddPress(subject string) error
	RemovePress(subject, id string) error
	UpdatePress(subject, id, field, value string) error
	AddSocial(subject string) error
	RemoveSocial(subject, id string) error
	UpdateSocial(subject, id, field, value string) error

	SetBandName(subject, v string) error
	SetTagline(subject, v string) error
	SetBio(subject, v string) error
	SetFont(subject, v string) error
	SetColor(subject, part, value string) error
	SetVaultPin(subject, v string) error
	SetManager(subject, name, email string) error

	Upload(ctx context.Context, subject, kind, targetID, filename string, size int64, r io.Reader) (string, error)
}

// ProfileLoader fetches the stored (not draft) profile for an identity.
type ProfileLoader interface {
	EnsureProfile(ctx context.Context, id, nameHint, emailHint string) (*models.Profile, error)
}

// EditorHandler serves the authenticated editor API.
type EditorHandler struct {
	Editor   EditorSession
	Profiles ProfileLoader
	// BaseURL is the public origin used to build share links.
	BaseURL string
}

// loadResponse is the editor bootstrap payload: the draft plus the
// share link and its QR image.
type loadResponse struct {
	Profile   *models.Profile `json:"profile"`
	PublicURL string          `json:"publicUrl"`
	QRCodeURL string          `json:"qrCodeUrl"`
}

// Load handles GET /api/epk: bootstraps the identity's profile and
// installs it as the session draft.
func (h *EditorHandler) Load(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	p, err := h.Editor.Load(r.Context(), ident)
	if err != nil {
		writeError(w, err)
		return
	}
	publicURL := h.BaseURL + "/" + ident.Subject
	writeJSON(w, http.StatusOK, loadResponse{
		Profile:   p,
		PublicURL: publicURL,
		QRCodeURL: qr.ImageURL(150, publicURL, p.Colors.Font, p.Colors.Background),
	})
}

// Save handles POST /api/epk: persists the whole working draft.
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if err := h.Editor.Save(r.Context(), ident.Subject); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// mutationRequest is one draft edit. Op selects the mutator; the other
// fields carry its arguments.
type mutationRequest struct {
	Op        string `json:"op" validate:"required"`
	Index     int    `json:"index"`
	Direction string `json:"direction"`
	ID        string `json:"id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Apply handles PATCH /api/epk: applies one mutation to the in-memory
// draft. Nothing is persisted until Save.
func (h *EditorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "op is required", http.StatusUnprocessableEntity)
		return
	}

	subject := ident.Subject
	var err error
	switch req.Op {
	case "moveSection":
		err = h.Editor.MoveSection(subject, req.Index, sections.Direction(req.Direction))
	case "toggleSection":
		err = h.Editor.ToggleSection(subject, req.Index)
	case "addCustomSection":
		err = h.Editor.AddCustomSection(subject)
	case "deleteSection":
		err = h.Editor.DeleteSection(subject, req.Index)
	case "updateSectionField":
		err = h.Editor.UpdateSectionField(subject, req.ID, req.Field, req.Value)
	case "addSong":
		err = h.Editor.AddSong(subject)
	case "removeSong":
		err = h.Editor.RemoveSong(subject, req.ID)
	case "updateSong":
		err = h.Editor.UpdateSong(subject, req.ID, req.Field, req.Value)
	case "addTour":
		err = h.Editor.AddTour(subject)
	case "removeTour":
		err = h.Editor.RemoveTour(subject, req.ID)
	case "updateTour":
		err = h.Editor.UpdateTour(subject, req.ID, req.Field, req.Value)
	case "addVideo":
		err = h.Editor.AddVideo(subject)
	case "removeVideo":
		err = h.Editor.RemoveVideo(subject, req.ID)
	case "updateVideo":
		err = h.Editor.UpdateVideo(subject, req.ID, req.Field, req.Value)
	case "addPress":
		err = h.Editor.AddPress(subject)
	case "removePress":
		err = h.Editor.RemovePress(subject, req.ID)
	case "updatePress":
		err = h.Editor.UpdatePress(subject, req.ID, req.Field, req.Value)
	case "addSocial":
		err = h.Editor.AddSocial(subject)
	case "removeSocial":
		err = h.Editor.RemoveSocial(subject, req.ID)
	case "updateSocial":
		err = h.Editor.UpdateSocial(subject, req.ID, req.Field, req.Value)
	case "setBandName":
		err = h.Editor.SetBandName(subject, req.Value)
	case "setTagline":
		err = h.Editor.SetTagline(subject, req.Value)
	case "setBio":
		err = h.Editor.SetBio(subject, req.Value)
	case "setFont":
		err = h.Editor.SetFont(subject, req.Value)
	case "setColor":
		err = h.Editor.SetColor(subject, req.Field, req.Value)
	case "setVaultPin":
		err = h.Editor.SetVaultPin(subject, req.Value)
	case "setManager":
		err = h.Editor.SetManager(subject, req.Name, req.Email)
	default:
		http.Error(w, "unknown op", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	draft, _ := h.Editor.Draft(subject)
	writeJSON(w, http.StatusOK, map[string]any{"profile": draft})
}

// Upload handles POST /api/epk/upload: a multipart form with "file",
// "kind" and an optional "targetId". The 10 MiB ceiling is enforced
// before any bytes leave the server.
func (h *EditorHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	targetID := r.FormValue("targetId")

	url, err := h.Editor.Upload(r.Context(), ident.Subject, kind, targetID, header.Filename, header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Summary handles GET /api/epk/summary: the dashboard analytics roll-up
// computed from the stored document, not the draft.
func (h *EditorHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	p, err := h.Profiles.EnsureProfile(r.Context(), ident.Subject, ident.Name, ident.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.Summarize(p))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy to HTTP statuses. Save and
// resolve failures are user-visible here; analytics increment failures
// never reach this point.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Band Not Found"})
	case errors.Is(err, service.ErrValidationRejected):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrWriteFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, service.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
