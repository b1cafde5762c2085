package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playbackhq/playback/internal/models"
	handler "github.com/playbackhq/playback/internal/server/handler/http"
	"github.com/playbackhq/playback/internal/service"
)

// fakePublic is a function-field PublicReader.
type fakePublic struct {
	ViewFunc           func(ctx context.Context, publicID, userAgent string) (*models.Profile, error)
	ResolveFunc        func(ctx context.Context, publicID string) (*models.Profile, error)
	UnlockFunc         func(ctx context.Context, publicID, pin string) (bool, error)
	TrackDownloadFunc  func(ctx context.Context, publicID, asset string)
	TrackLinkClickFunc func(ctx context.Context, publicID, platform string)
}

func (f *fakePublic) View(ctx context.Context, publicID, userAgent string) (*models.Profile, error) {
	return f.ViewFunc(ctx, publicID, userAgent)
}

func (f *fakePublic) Resolve(ctx context.Context, publicID string) (*models.Profile, error) {
	return f.ResolveFunc(ctx, publicID)
}

func (f *fakePublic) Unlock(ctx context.Context, publicID, pin string) (bool, error) {
	return f.UnlockFunc(ctx, publicID, pin)
}

func (f *fakePublic) TrackDownload(ctx context.Context, publicID, asset string) {
	f.TrackDownloadFunc(ctx, publicID, asset)
}

func (f *fakePublic) TrackLinkClick(ctx context.Context, publicID, platform string) {
	f.TrackLinkClickFunc(ctx, publicID, platform)
}

func publicRouter(h *handler.PublicHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{publicId}", h.View)
	r.Post("/{publicId}/unlock", h.Unlock)
	r.Post("/{publicId}/track", h.Track)
	return r
}

func vaultProfile() *models.Profile {
	p := models.NewProfile("Neon Echo", "mgr@example.com")
	p.VaultPin = "4321"
	p.Vault = models.Vault{TechRider: "https://cdn/rider.pdf"}
	p.Songs = []models.Song{{ID: "s1", Title: "Static"}}
	return p
}

func TestPublicView(t *testing.T) {
	p := vaultProfile()
	fake := &fakePublic{
		ViewFunc: func(_ context.Context, publicID, userAgent string) (*models.Profile, error) {
			if publicID != "neon-echo" {
				t.Errorf("publicID = %q", publicID)
			}
			return p, nil
		},
	}
	h := &handler.PublicHandler{Public: fake, BaseURL: "https://playback.app"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/neon-echo", nil)
	publicRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var body struct {
		BandName  string                    `json:"bandName"`
		Unlocked  bool                      `json:"unlocked"`
		QRCodeURL string                    `json:"qrCodeUrl"`
		Sections  []service.RenderedSection `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.BandName != "Neon Echo" {
		t.Errorf("bandName = %q", body.BandName)
	}
	if body.Unlocked {
		t.Error("plain view must render locked")
	}
	for _, sec := range body.Sections {
		if sec.Type == models.SectionVault {
			t.Error("vault section leaked into a locked view")
		}
	}
	if !strings.Contains(body.QRCodeURL, "neon-echo") {
		t.Errorf("qrCodeUrl = %q; want it to encode the page URL", body.QRCodeURL)
	}
}

func TestPublicView_NotFound(t *testing.T) {
	fake := &fakePublic{
		ViewFunc: func(context.Context, string, string) (*models.Profile, error) {
			return nil, service.ErrNotFound
		},
	}
	h := &handler.PublicHandler{Public: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nobody", nil)
	publicRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Band Not Found" {
		t.Errorf(`error = %q; want "Band Not Found"`, body["error"])
	}
}

func TestPublicUnlock(t *testing.T) {
	p := vaultProfile()
	fake := &fakePublic{
		UnlockFunc: func(_ context.Context, _, pin string) (bool, error) {
			return pin == "4321", nil
		},
		ResolveFunc: func(context.Context, string) (*models.Profile, error) {
			return p, nil
		},
	}
	h := &handler.PublicHandler{Public: fake, BaseURL: "https://playback.app"}
	router := publicRouter(h)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed short pin", `{"pin":"12"}`, http.StatusUnprocessableEntity},
		{"malformed alpha pin", `{"pin":"abcd"}`, http.StatusUnprocessableEntity},
		{"missing pin", `{}`, http.StatusUnprocessableEntity},
		{"wrong pin", `{"pin":"0000"}`, http.StatusForbidden},
		{"correct pin", `{"pin":"4321"}`, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/neon-echo/unlock", strings.NewReader(tc.body))
			router.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestPublicUnlock_SuccessRevealsVault(t *testing.T) {
	p := vaultProfile()
	fake := &fakePublic{
		UnlockFunc: func(context.Context, string, string) (bool, error) { return true, nil },
		ResolveFunc: func(context.Context, string) (*models.Profile, error) {
			return p, nil
		},
	}
	h := &handler.PublicHandler{Public: fake, BaseURL: "https://playback.app"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/neon-echo/unlock", strings.NewReader(`{"pin":"4321"}`))
	publicRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var body struct {
		Unlocked bool                      `json:"unlocked"`
		Sections []service.RenderedSection `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Unlocked {
		t.Error("unlocked = false; want true")
	}
	found := false
	for _, sec := range body.Sections {
		if sec.Type == models.SectionVault {
			found = true
		}
	}
	if !found {
		t.Error("unlock response must include the vault section")
	}
}

func TestPublicTrack(t *testing.T) {
	var gotKind, gotName string
	fake := &fakePublic{
		TrackDownloadFunc: func(_ context.Context, _, asset string) {
			gotKind, gotName = "download", asset
		},
		TrackLinkClickFunc: func(_ context.Context, _, platform string) {
			gotKind, gotName = "link", platform
		},
	}
	h := &handler.PublicHandler{Public: fake}
	router := publicRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/neon-echo/track", strings.NewReader(`{"kind":"download","name":"rider.pdf"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", rec.Code)
	}
	if gotKind != "download" || gotName != "rider.pdf" {
		t.Errorf("tracked %s/%s; want download/rider.pdf", gotKind, gotName)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/neon-echo/track", strings.NewReader(`{"kind":"scroll","name":"x"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown kind status = %d; want 422", rec.Code)
	}
}
