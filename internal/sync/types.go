package sync

import (
	"context"

	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/hubspot"
)

const (
	// batchSize is the page size used for every CSuite listing call.
	batchSize = 100
	// sampleLimit caps the source-side read volume in quick and dry-run
	// modes so interactive use stays fast.
	sampleLimit = 500
)

// FundSource is the CSuite read surface the syncs consume.
// *csuite.Client satisfies it.
type FundSource interface {
	ListProfiles(ctx context.Context, limit, offset int) ([]csuite.Profile, error)
	ListDonations(ctx context.Context, limit, offset int) ([]csuite.Donation, error)
	ListEventDates(ctx context.Context, limit, offset int) ([]csuite.EventDate, error)
}

// CRM is the HubSpot surface the syncs write to. *hubspot.Client satisfies it.
type CRM interface {
	UpdateContactByEmail(ctx context.Context, email string, properties map[string]string) error
	GetMarketingEventByExternalID(ctx context.Context, externalID string) (*hubspot.MarketingEvent, error)
	CreateMarketingEvent(ctx context.Context, event hubspot.MarketingEvent) error
	GetSubscriptionStatus(ctx context.Context, email string) (*hubspot.SubscriptionStatuses, error)
	SubscribeContact(ctx context.Context, email, subscriptionID string) error
}

// Options selects the run mode shared by all three syncs. DryRun computes
// and reports intended changes without issuing any HubSpot write; both
// DryRun and Quick cap the CSuite fetch at sampleLimit records.
type Options struct {
	DryRun bool
	Quick  bool
}

// fetchLimit returns the source-side record cap for these options,
// 0 meaning unlimited.
func (o Options) fetchLimit() int {
	if o.DryRun || o.Quick {
		return sampleLimit
	}
	return 0
}
