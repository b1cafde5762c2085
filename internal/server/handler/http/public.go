package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/qr"
	"github.com/playbackhq/playback/internal/service"
)

// PublicReader is the public-side service interface required by the
// PublicHandler.
type PublicReader interface {
	// View resolves a public id and records the visit best-effort.
	View(ctx context.Context, publicID, userAgent string) (*models.Profile, error)
	// Resolve fetches the profile without recording a visit.
	Resolve(ctx context.Context, publicID string) (*models.Profile, error)
	// Unlock checks the PIN and bumps the unlock counter on success.
	Unlock(ctx context.Context, publicID, pin string) (bool, error)
	// TrackDownload and TrackLinkClick bump engagement counters.
	TrackDownload(ctx context.Context, publicID, asset string)
	TrackLinkClick(ctx context.Context, publicID, platform string)
}

// PublicHandler serves the theme-rendered public press-kit view.
type PublicHandler struct {
	Public PublicReader
	// BaseURL is the public origin used for QR payloads.
	BaseURL string
}

// publicResponse is the page payload: presentation fields plus the
// ordered visible sections. Vault content only appears in unlock
// responses; a plain view always renders locked.
type publicResponse struct {
	BandName  string                    `json:"bandName"`
	Tagline   string                    `json:"tagline"`
	Bio       string                    `json:"bio"`
	HeroImage string                    `json:"heroImage"`
	Font      string                    `json:"font"`
	Colors    models.Colors             `json:"colors"`
	Socials   []models.SocialLink       `json:"socials"`
	Sections  []service.RenderedSection `json:"sections"`
	QRCodeURL string                    `json:"qrCodeUrl"`
	Unlocked  bool                      `json:"unlocked"`
}

func (h *PublicHandler) respond(w http.ResponseWriter, publicID string, p *models.Profile, unlocked bool) {
	pageURL := h.BaseURL + "/" + publicID
	writeJSON(w, http.StatusOK, publicResponse{
		BandName:  p.BandName,
		Tagline:   p.Tagline,
		Bio:       p.Bio,
		HeroImage: p.HeroImage,
		Font:      p.Font,
		Colors:    p.Colors,
		Socials:   p.Socials,
		Sections:  service.Render(p, unlocked),
		QRCodeURL: qr.ImageURL(300, pageURL, p.Colors.Font, p.Colors.Background),
		Unlocked:  unlocked,
	})
}

// View handles GET /{publicId}. Gate state is session-local to the
// viewer and never persisted, so a plain view is always locked.
func (h *PublicHandler) View(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")
	p, err := h.Public.View(r.Context(), publicID, r.UserAgent())
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(w, publicID, p, false)
}

// unlockRequest carries the submitted vault PIN.
type unlockRequest struct {
	Pin string `json:"pin" validate:"required,len=4,numeric"`
}

// Unlock handles POST /{publicId}/unlock. A malformed PIN is rejected
// locally; a well-formed wrong PIN returns the gate to locked with a
// user-visible rejection and no retry limit.
func (h *PublicHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "PIN must be 4 digits", http.StatusUnprocessableEntity)
		return
	}

	ok, err := h.Public.Unlock(r.Context(), publicID, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Incorrect PIN."})
		return
	}

	p, err := h.Public.Resolve(r.Context(), publicID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(w, publicID, p, true)
}

// trackRequest names an engagement event.
type trackRequest struct {
	Kind string `json:"kind" validate:"required,oneof=download link"`
	Name string `json:"name" validate:"required"`
}

// Track handles POST /{publicId}/track: best-effort download and
// link-click counters. It always succeeds from the viewer's side.
func (h *PublicHandler) Track(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "kind and name are required", http.StatusUnprocessableEntity)
		return
	}

	switch req.Kind {
	case "download":
		h.Public.TrackDownload(r.Context(), publicID, req.Name)
	case "link":
		h.Public.TrackLinkClick(r.Context(), publicID, req.Name)
	}
	w.WriteHeader(http.StatusNoContent)
}
