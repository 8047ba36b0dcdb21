// Package http provides HTTP routing and middleware configuration
// for the Afterly service.
package http

import (
	"net/http"

	"github.com/afterly/afterly/internal/middleware"
	"github.com/afterly/afterly/internal/obs"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Profile  *ProfileHandler
	Contact  *ContactHandler
	Account  *AccountHandler
	Document *DocumentHandler
	Media    *MediaHandler
	Sharing  *SharingHandler
	Webhook  *WebhookHandler
	Legacy   *LegacyHandler
}

// NewRouter constructs and returns the HTTP handler serving the Afterly API.
//
// Surfaces:
//
//	/api/*                  — owner operations, identity header required
//	/webhooks/*             — partner endpoints (death trigger, insurance sync)
//	/legacy/{token}         — public read-only legacy pages, rate limited
//	/files/*                — blob downloads (fileServer may be nil to disable)
//	/metrics, /healthz      — operational endpoints
//
// Middleware chain (applied in order):
//  1. RequestID / Recoverer              — chi plumbing, panics never cross the boundary
//  2. obs.Instrument                     — request metrics
//  3. WithRequestLogging(logger)         — logs incoming requests
//
// JSON content-type enforcement and the identity check apply only inside
// /api; the legacy and webhook surfaces stay public.
func NewRouter(h Handlers, fileServer http.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(obs.Instrument)
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity)

		// Mutating endpoints carry JSON bodies except the multipart uploads.
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Post("/profile", h.Profile.Create)
			r.Put("/profile", h.Profile.Update)

			r.Post("/contacts", h.Contact.Create)
			r.Put("/contacts/{contactID}", h.Contact.Update)

			r.Post("/accounts", h.Account.Create)
			r.Put("/accounts/{accountID}", h.Account.Update)

			r.Post("/documents", h.Document.Create)
			r.Put("/documents/{documentID}", h.Document.Update)

			r.Post("/media/folders", h.Media.CreateFolder)
			r.Put("/media/folders/{folderID}", h.Media.UpdateFolder)

			r.Post("/sharing/{kind}/{resourceID}", h.Sharing.Grant)
			r.Put("/sharing/{kind}/{resourceID}", h.Sharing.ReplaceAll)
		})

		r.Get("/profile", h.Profile.Get)

		r.Get("/contacts", h.Contact.List)
		r.Delete("/contacts/{contactID}", h.Contact.Delete)

		r.Get("/accounts", h.Account.List)
		r.Delete("/accounts/{accountID}", h.Account.Delete)

		r.Get("/documents", h.Document.List)
		r.Post("/documents/upload", h.Document.Upload)
		r.Delete("/documents/{documentID}", h.Document.Delete)

		r.Get("/media", h.Media.List)
		r.Post("/media/items", h.Media.UploadItem)
		r.Delete("/media/items/{itemID}", h.Media.DeleteItem)
		r.Delete("/media/folders/{folderID}", h.Media.DeleteFolder)

		r.Get("/sharing/{kind}/{resourceID}", h.Sharing.ListContacts)
		r.Delete("/sharing/{kind}/{resourceID}/{contactID}", h.Sharing.Revoke)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/death-trigger", h.Webhook.DeathTrigger)
		r.Get("/death-trigger", h.Webhook.DeathTriggerInfo)
		r.Post("/insurance", h.Webhook.InsuranceSync)
		r.Get("/insurance", h.Webhook.InsuranceSyncInfo)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rate.Limit(5), 10))
		r.Get("/legacy/{token}", h.Legacy.View)
	})

	if fileServer != nil {
		r.Handle("/files/*", http.StripPrefix("/files/", fileServer))
	}

	r.Handle("/metrics", obs.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
