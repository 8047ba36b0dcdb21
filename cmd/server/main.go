// Package main initializes and starts the Afterly server, setting up
// configuration, logging, database connections, repositories, services,
// handlers, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/afterly/afterly/internal/config"
	"github.com/afterly/afterly/internal/db"
	"github.com/afterly/afterly/internal/logger"
	"github.com/afterly/afterly/internal/mailer"
	"github.com/afterly/afterly/internal/obs"
	"github.com/afterly/afterly/internal/repository"
	"github.com/afterly/afterly/internal/server/handler/http"
	"github.com/afterly/afterly/internal/service"
	"github.com/afterly/afterly/internal/storage"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

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

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Remove long-expired legacy tokens in the background.
	db.StartExpiredTokenCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days past expiry
		zapLogger,
	)

	// Register Prometheus collectors.
	obs.Init()

	// Initialize the filesystem blob store.
	blobs, err := storage.NewFileStore(options.BlobDir, options.BaseURL)
	if err != nil {
		zapLogger.Fatal("cannot init blob store", zap.Error(err))
	}

	// Outbound mail. A nil sender disables dispatch entirely; the services
	// skip notifications and invitations when no sender address is configured.
	var sender mailer.Sender
	if options.MailFrom != "" {
		sender = mailer.NewLogSender(zapLogger.With(zap.String("from", options.MailFrom)))
	}

	// Initialize repositories.
	profileRepo := repository.NewPostgresProfileRepository(postgresDB)
	contactRepo := repository.NewPostgresContactRepository(postgresDB)
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)
	documentRepo := repository.NewPostgresDocumentRepository(postgresDB)
	mediaRepo := repository.NewPostgresMediaRepository(postgresDB)
	grantRepo := repository.NewPostgresGrantRepository(postgresDB)
	tokenRepo := repository.NewPostgresTokenRepository(postgresDB)
	invitationRepo := repository.NewPostgresInvitationRepository(postgresDB)

	// Initialize business-logic services.
	profileService := service.NewProfileService(profileRepo)
	contactService := service.NewContactService(profileRepo, contactRepo)
	accountService := service.NewAccountService(profileRepo, accountRepo, contactRepo)
	documentService := service.NewDocumentService(profileRepo, documentRepo, blobs, zapLogger)
	mediaService := service.NewMediaService(profileRepo, mediaRepo, blobs, zapLogger)
	sharingService := service.NewSharingService(profileRepo, grantRepo, contactRepo, documentRepo, mediaRepo, accountRepo)
	triggerService := service.NewTriggerService(profileRepo, contactRepo, tokenRepo, sender, options.BaseURL, zapLogger)
	legacyService := service.NewLegacyService(tokenRepo, profileRepo, contactRepo, documentRepo, mediaRepo, accountRepo, zapLogger)
	insuranceService := service.NewInsuranceService(profileRepo, invitationRepo, sender, options.BaseURL, zapLogger)

	// Create HTTP handlers.
	handlers := http.Handlers{
		Profile:  &http.ProfileHandler{ProfileService: profileService},
		Contact:  &http.ContactHandler{ContactService: contactService},
		Account:  &http.AccountHandler{AccountService: accountService},
		Document: &http.DocumentHandler{DocumentService: documentService},
		Media:    &http.MediaHandler{MediaService: mediaService},
		Sharing:  &http.SharingHandler{SharingService: sharingService},
		Webhook:  &http.WebhookHandler{TriggerService: triggerService, InsuranceService: insuranceService, Log: zapLogger},
		Legacy:   &http.LegacyHandler{LegacyService: legacyService, Log: zapLogger},
	}

	// Build the router with middleware and routes.
	fileServer := nethttp.FileServer(nethttp.Dir(options.BlobDir))
	router := http.NewRouter(handlers, fileServer, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
