package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/operations777/Reminder-bot/internal/middleware"
)

// MountRoutes registers the webhook and probe endpoints. Every Slack
// callback sits behind signed-request verification; the probes do
// not.
func MountRoutes(r chi.Router, h *Handlers, signingSecret string) {
	r.Get("/healthz", h.HandleHealthz)
	r.Get("/readyz", h.HandleReadyz)

	r.Route("/slack", func(r chi.Router) {
		r.Use(middleware.SlackSignature(signingSecret))
		r.Post("/commands", h.HandleSlashCommand)
		r.Post("/interactions", h.HandleInteraction)
		r.Post("/options", h.HandleOptions)
	})
}
