package sync

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/pkg/apierr"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

// DonationAggregate is the per-profile summary written onto a HubSpot
// contact: lifetime total, donation count, and the most recent donation.
type DonationAggregate struct {
	Total      float64
	Count      int
	LastDate   string
	LastAmount float64
}

// DonationResult is the tally returned by one donation sync run.
type DonationResult struct {
	RunID           string   `json:"run_id"`
	Updated         int      `json:"updated"`
	SkippedNoEmail  int      `json:"skipped_no_email"`
	SkippedNotFound int      `json:"skipped_not_found"`
	Errors          int      `json:"errors"`
	Details         []string `json:"details,omitempty"`
}

// DonationSync pushes donation aggregates from CSuite onto HubSpot contact
// properties, matching profile.primary_email to contact.email.
type DonationSync struct {
	source FundSource
	crm    CRM
}

// NewDonationSync creates a donation sync over the given clients.
func NewDonationSync(source FundSource, crm CRM) *DonationSync {
	return &DonationSync{source: source, crm: crm}
}

// AggregateDonations groups donations by profile id and computes lifetime
// totals plus the most recent donation. Records without a profile id are
// skipped; unparseable amounts count as zero. For profiles whose latest
// donations share a date, the one earliest in source order wins (the sort
// is stable).
func AggregateDonations(donations []csuite.Donation) map[string]DonationAggregate {
	type pair struct {
		amount float64
		date   string
	}
	totals := make(map[string]*DonationAggregate)
	pairs := make(map[string][]pair)
	var order []string

	for _, d := range donations {
		profileID := d.ProfileID.String()
		if profileID == "" {
			continue
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
		if err != nil {
			amount = 0
		}

		agg, ok := totals[profileID]
		if !ok {
			agg = &DonationAggregate{}
			totals[profileID] = agg
			order = append(order, profileID)
		}
		agg.Total += amount
		agg.Count++
		pairs[profileID] = append(pairs[profileID], pair{amount: amount, date: d.Date})
	}

	result := make(map[string]DonationAggregate, len(order))
	for _, profileID := range order {
		agg := totals[profileID]
		ps := pairs[profileID]
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].date > ps[j].date
		})
		agg.LastDate = ps[0].date
		agg.LastAmount = ps[0].amount
		result[profileID] = *agg
	}
	return result
}

// formatHubSpotDate converts a CSuite YYYY-MM-DD date to the midnight-UTC
// form HubSpot date properties require. Returns "" for missing or invalid
// dates.
func formatHubSpotDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		logger.Warn("invalid donation date", "date", dateStr)
		return ""
	}
	return t.Format("2006-01-02") + "T00:00:00.000Z"
}

// profileEmails builds the profile_id → email mapping used for contact
// matching. Emails are lowercased and trimmed here, once.
func (s *DonationSync) profileEmails(ctx context.Context, limit int) (map[string]string, error) {
	profiles, err := FetchAll(ctx, s.source.ListProfiles, FetchOptions{Limit: limit})

	emails := make(map[string]string)
	for _, p := range profiles {
		id := p.ProfileID.String()
		if id == "" || p.PrimaryEmail == "" {
			continue
		}
		emails[id] = strings.ToLower(strings.TrimSpace(p.PrimaryEmail))
	}
	logger.Info("profiles with emails", "count", len(emails))
	return emails, err
}

// Sync runs the full donation sync and returns the tally. It never panics
// or returns an error past this boundary; total failure yields a zero
// tally with a detail message.
func (s *DonationSync) Sync(ctx context.Context, opts Options) DonationResult {
	res := DonationResult{RunID: uuid.NewString()}
	limit := opts.fetchLimit()

	logger.Info("starting donation sync", "run_id", res.RunID, "dry_run", opts.DryRun, "quick", opts.Quick)

	emails, err := s.profileEmails(ctx, limit)
	if len(emails) == 0 {
		if err != nil {
			res.Errors++
			res.Details = append(res.Details, fmt.Sprintf("CSuite error: %v", err))
		} else {
			res.Details = append(res.Details, "No profiles with emails found in CSuite")
		}
		return res
	}

	donations, err := FetchAll(ctx, s.source.ListDonations, FetchOptions{Limit: limit})
	if err != nil {
		logger.Warn("donation fetch incomplete, continuing with partial results",
			"fetched", len(donations), "error", err)
	}
	if len(donations) == 0 {
		res.Details = append(res.Details, "No donations found in CSuite")
		return res
	}
	logger.Info("donations fetched", "count", len(donations))

	aggregates := AggregateDonations(donations)
	logger.Info("donations aggregated", "profiles", len(aggregates))

	for profileID, agg := range aggregates {
		email, ok := emails[profileID]
		if !ok {
			res.SkippedNoEmail++
			continue
		}

		properties := map[string]string{
			"lifetime_giving":      fmt.Sprintf("%.2f", agg.Total),
			"donation_count":       strconv.Itoa(agg.Count),
			"last_donation_amount": fmt.Sprintf("%.2f", agg.LastAmount),
			"csuite_profile_id":    profileID,
		}
		if formatted := formatHubSpotDate(agg.LastDate); formatted != "" {
			properties["last_donation_date"] = formatted
		}

		if opts.DryRun {
			logger.Info("[dry run] would update contact", "email", email)
			res.Updated++
			continue
		}

		switch err := s.crm.UpdateContactByEmail(ctx, email, properties); {
		case err == nil:
			res.Updated++
			logger.Debug("contact updated", "email", email, "lifetime", agg.Total)
		case apierr.IsNotFound(err):
			res.SkippedNotFound++
			logger.Debug("contact not in HubSpot", "email", email)
		default:
			res.Errors++
			logger.Error("contact update failed", "email", email, "error", err)
		}
	}

	logger.Info("donation sync complete",
		"updated", res.Updated,
		"skipped_no_email", res.SkippedNoEmail,
		"skipped_not_found", res.SkippedNotFound,
		"errors", res.Errors)
	return res
}
