// Package main initializes and starts the Playback press-kit server,
// setting up configuration, logging, the document store, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/playbackhq/playback/internal/config"
	"github.com/playbackhq/playback/internal/db"
	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/logger"
	"github.com/playbackhq/playback/internal/repository"
	"github.com/playbackhq/playback/internal/server/handler/http"
	"github.com/playbackhq/playback/internal/service"
	"github.com/playbackhq/playback/internal/storage"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// publicBaseURL is the origin share links and QR payloads point at.
const publicBaseURL = "https://playback.app"

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Connect to the document store. A failure here is terminal: the
	// store is the single persistence authority.
	client, err := db.InitMongo(context.Background(), options.MongoURI)
	if err != nil {
		zapLogger.Fatal("cannot init document store", zap.Error(err))
	}
	repo := repository.NewMongoProfileRepository(client.Database(options.Database))

	// Trim stale per-day view buckets in the background.
	db.StartDailyViewsPruner(context.Background(), repo, repository.Bands,
		time.Hour,       // interval
		90*24*time.Hour, // retention: 90 days
		zapLogger,
	)

	// Binary store for hero images, audio and vault assets.
	files, err := storage.NewCloudinaryStore(options.CloudinaryURL)
	if err != nil {
		zapLogger.Fatal("cannot init binary store", zap.Error(err))
	}

	// Business-logic services.
	bootstrap := service.NewBootstrapService(repo)
	editor := service.NewEditorService(bootstrap, repo, files)
	public := service.NewPublicService(repo, zapLogger)

	// Identity resolution and HTTP handlers.
	resolver := identity.NewResolver(options.JWTSecret)
	editorHandler := &http.EditorHandler{Editor: editor, Profiles: bootstrap, BaseURL: publicBaseURL}
	publicHandler := &http.PublicHandler{Public: public, BaseURL: publicBaseURL}
	sessionHandler := &http.SessionHandler{}

	router := http.NewRouter(editorHandler, publicHandler, sessionHandler, resolver, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
