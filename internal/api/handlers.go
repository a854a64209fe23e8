package api

import (
	"net/http"
	"time"

	"github.com/AMCF-2026/jidhr/internal/pkg/httputil"
	"github.com/AMCF-2026/jidhr/internal/sync"
)

// Handlers holds the sync instances behind the HTTP surface.
type Handlers struct {
	donations  *sync.DonationSync
	events     *sync.EventSync
	newsletter *sync.NewsletterSync
	startedAt  time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(donations *sync.DonationSync, events *sync.EventSync, newsletter *sync.NewsletterSync) *Handlers {
	return &Handlers{
		donations:  donations,
		events:     events,
		newsletter: newsletter,
		startedAt:  time.Now(),
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// syncOptions reads the shared run-mode query parameters.
func syncOptions(r *http.Request) sync.Options {
	return sync.Options{
		DryRun: boolParam(r, "dry_run"),
		Quick:  boolParam(r, "quick"),
	}
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// SyncDonations runs the donation sync and returns its tally.
func (h *Handlers) SyncDonations(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.donations.Sync(r.Context(), syncOptions(r)))
}

// SyncEvents runs the event sync and returns its tally.
func (h *Handlers) SyncEvents(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.events.Sync(r.Context(), syncOptions(r)))
}

// SyncNewsletter runs the newsletter sync and returns its tally.
func (h *Handlers) SyncNewsletter(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.newsletter.Sync(r.Context(), syncOptions(r)))
}
