package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the Playback API.
//
// Routes:
//
//	POST /api/session          → session state for the presented token
//	GET  /api/epk              → load the editor draft
//	POST /api/epk              → save the draft (whole-document replace)
//	PATCH /api/epk             → apply one draft mutation
//	POST /api/epk/upload       → multipart asset upload (10 MiB ceiling)
//	GET  /api/epk/summary      → dashboard analytics roll-up
//	GET  /{publicId}           → public press-kit view (locked)
//	POST /{publicId}/unlock    → vault PIN submission
//	POST /{publicId}/track     → download / link-click counters
//
// The /api group resolves identity from bearer tokens, falling back to
// the demo identity; public routes carry no identity at all.
func NewRouter(
	editorHandler *EditorHandler,
	publicHandler *PublicHandler,
	sessionHandler *SessionHandler,
	resolver *identity.Resolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
		r.Use(middleware.WithIdentity(resolver))

		r.Post("/session", sessionHandler.Resolve)

		r.Route("/epk", func(r chi.Router) {
			r.Get("/", editorHandler.Load)
			r.Post("/", editorHandler.Save)
			r.Patch("/", editorHandler.Apply)
			r.Post("/upload", editorHandler.Upload)
			r.Get("/summary", editorHandler.Summary)
		})
	})

	r.Get("/{publicId}", publicHandler.View)
	r.Post("/{publicId}/unlock", publicHandler.Unlock)
	r.Post("/{publicId}/track", publicHandler.Track)

	return r
}
