package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AMCF-2026/jidhr/internal/hubspot"
	"github.com/AMCF-2026/jidhr/internal/pkg/apierr"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

// NewsletterResult is the tally returned by one newsletter sync run.
type NewsletterResult struct {
	RunID             string   `json:"run_id"`
	Subscribed        int      `json:"subscribed"`
	AlreadySubscribed int      `json:"already_subscribed"`
	NotFound          int      `json:"not_found"`
	Errors            int      `json:"errors"`
	Details           []string `json:"details,omitempty"`
}

// NewsletterSync propagates the CSuite newsletter opt-in flag into HubSpot
// communication preferences for one subscription type.
type NewsletterSync struct {
	source         FundSource
	crm            CRM
	subscriptionID string
}

// NewNewsletterSync creates a newsletter sync over the given clients.
func NewNewsletterSync(source FundSource, crm CRM, subscriptionID string) *NewsletterSync {
	return &NewsletterSync{source: source, crm: crm, subscriptionID: subscriptionID}
}

type optedInProfile struct {
	profileID string
	email     string
	name      string
}

// optedInProfiles returns the profiles carrying both an email and the
// newsletter opt-in flag, in source order.
func (s *NewsletterSync) optedInProfiles(ctx context.Context, limit int) ([]optedInProfile, error) {
	profiles, err := FetchAll(ctx, s.source.ListProfiles, FetchOptions{Limit: limit})

	var opted []optedInProfile
	for _, p := range profiles {
		if p.PrimaryEmail == "" || p.Newsletter != 1 {
			continue
		}
		opted = append(opted, optedInProfile{
			profileID: p.ProfileID.String(),
			email:     strings.ToLower(strings.TrimSpace(p.PrimaryEmail)),
			name:      p.Name,
		})
	}
	logger.Info("newsletter opt-ins found", "count", len(opted))
	return opted, err
}

// alreadySubscribed checks the contact's current state for our
// subscription id. A failed status query reads as "unknown": the
// subscribe call is attempted anyway.
func (s *NewsletterSync) alreadySubscribed(ctx context.Context, email string) bool {
	status, err := s.crm.GetSubscriptionStatus(ctx, email)
	if err != nil {
		return false
	}
	for _, sub := range status.SubscriptionStatuses {
		if sub.ID == s.subscriptionID && sub.Status == hubspot.StatusSubscribed {
			return true
		}
	}
	return false
}

// notFoundError classifies a subscribe failure as "contact does not exist
// in HubSpot". Structured codes are preferred; the message markers cover
// endpoints that only report text.
func notFoundError(err error) bool {
	if apierr.IsNotFound(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// Sync runs the full newsletter sync and returns the tally.
func (s *NewsletterSync) Sync(ctx context.Context, opts Options) NewsletterResult {
	res := NewsletterResult{RunID: uuid.NewString()}

	logger.Info("starting newsletter sync", "run_id", res.RunID, "dry_run", opts.DryRun, "quick", opts.Quick)

	opted, err := s.optedInProfiles(ctx, opts.fetchLimit())
	if len(opted) == 0 {
		if err != nil {
			res.Errors++
			res.Details = append(res.Details, fmt.Sprintf("CSuite error: %v", err))
		} else {
			res.Details = append(res.Details, "No profiles with newsletter opt-in found")
		}
		return res
	}

	for _, profile := range opted {
		if opts.DryRun {
			logger.Info("[dry run] would subscribe", "email", profile.email)
			res.Subscribed++
			continue
		}

		if s.alreadySubscribed(ctx, profile.email) {
			res.AlreadySubscribed++
			logger.Debug("already subscribed", "email", profile.email)
			continue
		}

		switch err := s.crm.SubscribeContact(ctx, profile.email, s.subscriptionID); {
		case err == nil:
			res.Subscribed++
			logger.Debug("subscribed", "email", profile.email)
		case notFoundError(err):
			res.NotFound++
			logger.Debug("contact not in HubSpot", "email", profile.email)
		default:
			res.Errors++
			logger.Error("subscribe failed", "email", profile.email, "error", err)
		}
	}

	logger.Info("newsletter sync complete",
		"subscribed", res.Subscribed,
		"already_subscribed", res.AlreadySubscribed,
		"not_found", res.NotFound,
		"errors", res.Errors)
	return res
}
