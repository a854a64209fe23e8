package sync

import (
	"context"
	"fmt"

	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/hubspot"
	"github.com/AMCF-2026/jidhr/internal/pkg/apierr"
)

// fakeSource serves canned CSuite records with real offset paging.
type fakeSource struct {
	profiles  []csuite.Profile
	donations []csuite.Donation
	events    []csuite.EventDate

	profileErr  error
	donationErr error
	eventErr    error

	profileCalls  int
	donationCalls int
	eventCalls    int
}

func pageOf[T any](records []T, limit, offset int) []T {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

func (f *fakeSource) ListProfiles(ctx context.Context, limit, offset int) ([]csuite.Profile, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return pageOf(f.profiles, limit, offset), nil
}

func (f *fakeSource) ListDonations(ctx context.Context, limit, offset int) ([]csuite.Donation, error) {
	f.donationCalls++
	if f.donationErr != nil {
		return nil, f.donationErr
	}
	return pageOf(f.donations, limit, offset), nil
}

func (f *fakeSource) ListEventDates(ctx context.Context, limit, offset int) ([]csuite.EventDate, error) {
	f.eventCalls++
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return pageOf(f.events, limit, offset), nil
}

// fakeCRM records every write so tests can assert on dry-run behavior.
type fakeCRM struct {
	// contact updates
	updated   map[string]map[string]string
	updateErr map[string]error

	// marketing events
	existingEvents map[string]bool
	created        []hubspot.MarketingEvent
	createErr      error
	lookupErr      error

	// subscriptions
	statuses     map[string]*hubspot.SubscriptionStatuses
	statusErr    map[string]error
	subscribed   []string
	subscribeErr map[string]error

	writes int
}

func newFakeCRM() *fakeCRM {
	return &fakeCRM{
		updated:        make(map[string]map[string]string),
		updateErr:      make(map[string]error),
		existingEvents: make(map[string]bool),
		statuses:       make(map[string]*hubspot.SubscriptionStatuses),
		statusErr:      make(map[string]error),
		subscribeErr:   make(map[string]error),
	}
}

func (f *fakeCRM) UpdateContactByEmail(ctx context.Context, email string, properties map[string]string) error {
	f.writes++
	if err, ok := f.updateErr[email]; ok {
		return err
	}
	f.updated[email] = properties
	return nil
}

func (f *fakeCRM) GetMarketingEventByExternalID(ctx context.Context, externalID string) (*hubspot.MarketingEvent, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if f.existingEvents[externalID] {
		return &hubspot.MarketingEvent{EventName: "existing", ExternalEventID: externalID}, nil
	}
	return nil, apierr.NotFound("hubspot.GetMarketingEventByExternalID", "not found: %s", externalID)
}

func (f *fakeCRM) CreateMarketingEvent(ctx context.Context, event hubspot.MarketingEvent) error {
	f.writes++
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, event)
	f.existingEvents[event.ExternalEventID] = true
	return nil
}

func (f *fakeCRM) GetSubscriptionStatus(ctx context.Context, email string) (*hubspot.SubscriptionStatuses, error) {
	if err, ok := f.statusErr[email]; ok {
		return nil, err
	}
	if status, ok := f.statuses[email]; ok {
		return status, nil
	}
	return &hubspot.SubscriptionStatuses{Recipient: email}, nil
}

func (f *fakeCRM) SubscribeContact(ctx context.Context, email, subscriptionID string) error {
	f.writes++
	if err, ok := f.subscribeErr[email]; ok {
		return err
	}
	f.subscribed = append(f.subscribed, email)
	return nil
}

// transportErr builds an unclassified-looking Transport error for tests.
func transportErr(msg string) error {
	return apierr.Wrap(apierr.Transport, "test", fmt.Errorf("%s", msg))
}

func notFoundFor(email string) error {
	return apierr.NotFound("hubspot.SearchContactByEmail", "contact not found: %s", email)
}
