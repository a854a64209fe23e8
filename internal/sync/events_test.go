package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMCF-2026/jidhr/internal/csuite"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestEventSync(source *fakeSource, crm *fakeCRM) *EventSync {
	s := NewEventSync(source, crm, "owner-1")
	s.now = fixedNow
	return s
}

func TestBuildMarketingEvent_FullMapping(t *testing.T) {
	event := BuildMarketingEvent(csuite.EventDate{
		EventDateID:      "42",
		EventName:        "Event - Other",
		EventDescription: "Annual Symposium",
		EventDate:        "2024-09-10",
		StartTime:        "18:30",
		EventTypeCode:    "gala",
		Location:         "Fremont, CA",
	}, "owner-1")

	assert.Equal(t, "Annual Symposium", event.EventName)
	assert.Equal(t, "owner-1", event.EventOrganizer)
	assert.Equal(t, "csuite-42", event.ExternalEventID)
	assert.Equal(t, "Charity & Causes", event.EventType)
	assert.Equal(t, "2024-09-10T18:30:00.000Z", event.StartDateTime)
	assert.Equal(t, "2024-09-10T20:30:00.000Z", event.EndDateTime)
	require.Len(t, event.CustomProperties, 1)
	assert.Equal(t, "location", event.CustomProperties[0].Name)
	assert.Equal(t, "Fremont, CA", event.CustomProperties[0].Value)
}

func TestBuildMarketingEvent_NameFallbacks(t *testing.T) {
	event := BuildMarketingEvent(csuite.EventDate{EventName: "Gala Night"}, "owner-1")
	assert.Equal(t, "Gala Night", event.EventName)

	event = BuildMarketingEvent(csuite.EventDate{}, "owner-1")
	assert.Equal(t, "Unnamed Event", event.EventName)
}

func TestBuildMarketingEvent_DefaultStartTime(t *testing.T) {
	event := BuildMarketingEvent(csuite.EventDate{
		EventDateID: "7",
		EventDate:   "2024-09-10",
	}, "owner-1")

	assert.Equal(t, "2024-09-10T10:00:00.000Z", event.StartDateTime)
	assert.Equal(t, "2024-09-10T12:00:00.000Z", event.EndDateTime)
}

func TestBuildMarketingEvent_MissingDate(t *testing.T) {
	event := BuildMarketingEvent(csuite.EventDate{EventDateID: "7"}, "owner-1")
	assert.Empty(t, event.StartDateTime)
	assert.Empty(t, event.EndDateTime)
}

func TestBuildMarketingEvent_ExternalIDFallbacks(t *testing.T) {
	assert.Equal(t, "csuite-42",
		BuildMarketingEvent(csuite.EventDate{EventDateID: "42", EventID: "9"}, "o").ExternalEventID)
	assert.Equal(t, "csuite-9",
		BuildMarketingEvent(csuite.EventDate{EventID: "9"}, "o").ExternalEventID)
	assert.Equal(t, "csuite-unknown",
		BuildMarketingEvent(csuite.EventDate{}, "o").ExternalEventID)
}

func TestMapEventType(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"event", "Conference"},
		{"WEBINAR", "Webinar"},
		{"fundraiser", "Charity & Causes"},
		{"gala", "Charity & Causes"},
		{"workshop", "Workshop"},
		{"meeting", "Meeting"},
		{"mystery", "Other"},
		{"", "Other"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, mapEventType(tc.code), "code %q", tc.code)
	}
}

func TestEventSync_CreatesFutureEvents(t *testing.T) {
	source := &fakeSource{events: []csuite.EventDate{
		{EventDateID: "1", EventDescription: "Future Gala", EventDate: "2024-07-01"},
		{EventDateID: "2", EventDescription: "Yesterday", EventDate: "2024-06-14"},
		{EventDateID: "3", EventDescription: "Archived", EventDate: "2024-08-01", Archived: true},
		{EventDateID: "4", EventDescription: "Undated"},
	}}
	crm := newFakeCRM()

	res := newTestEventSync(source, crm).Sync(context.Background(), Options{})

	assert.Equal(t, 2, res.Created) // future + undated
	assert.Equal(t, 1, res.SkippedPast)
	assert.Equal(t, 1, res.SkippedArchived)
	assert.Equal(t, 0, res.Errors)
	require.Len(t, crm.created, 2)
	assert.Equal(t, "csuite-1", crm.created[0].ExternalEventID)
}

func TestEventSync_SecondRunIsIdempotent(t *testing.T) {
	source := &fakeSource{events: []csuite.EventDate{
		{EventDateID: "1", EventDescription: "Gala", EventDate: "2024-07-01"},
		{EventDateID: "2", EventDescription: "Workshop", EventDate: "2024-07-02"},
	}}
	crm := newFakeCRM()

	first := newTestEventSync(source, crm).Sync(context.Background(), Options{})
	assert.Equal(t, 2, first.Created)

	second := newTestEventSync(source, crm).Sync(context.Background(), Options{})
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.SkippedExists)
}

func TestEventSync_LookupFailureAllowsCreate(t *testing.T) {
	source := &fakeSource{events: []csuite.EventDate{
		{EventDateID: "1", EventDescription: "Gala", EventDate: "2024-07-01"},
	}}
	crm := newFakeCRM()
	crm.lookupErr = transportErr("probe failed")

	res := newTestEventSync(source, crm).Sync(context.Background(), Options{})

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.SkippedExists)
}

func TestEventSync_DryRunPerformsNoWrites(t *testing.T) {
	source := &fakeSource{events: []csuite.EventDate{
		{EventDateID: "1", EventDescription: "Gala", EventDate: "2024-07-01"},
	}}
	crm := newFakeCRM()

	res := newTestEventSync(source, crm).Sync(context.Background(), Options{DryRun: true})

	assert.Equal(t, 1, res.Created)
	assert.Zero(t, crm.writes)
	assert.Contains(t, res.Details, "Would create: Gala")
}

func TestEventSync_CreateFailureTally(t *testing.T) {
	source := &fakeSource{events: []csuite.EventDate{
		{EventDateID: "1", EventDescription: "Gala", EventDate: "2024-07-01"},
	}}
	crm := newFakeCRM()
	crm.createErr = transportErr("500 from HubSpot")

	res := newTestEventSync(source, crm).Sync(context.Background(), Options{})

	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Errors)
}

func TestEventSync_FetchFailureAborts(t *testing.T) {
	source := &fakeSource{eventErr: transportErr("timeout")}
	crm := newFakeCRM()

	res := newTestEventSync(source, crm).Sync(context.Background(), Options{})

	assert.Equal(t, 1, res.Errors)
	assert.NotEmpty(t, res.Details)
	assert.Zero(t, crm.writes)
}

func TestEventSync_NoEvents(t *testing.T) {
	res := newTestEventSync(&fakeSource{}, newFakeCRM()).Sync(context.Background(), Options{})

	assert.Zero(t, res.Created)
	assert.Contains(t, res.Details, "No events found in CSuite")
}
