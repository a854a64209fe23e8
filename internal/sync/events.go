package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/hubspot"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

const (
	// defaultStartTime is assumed when a CSuite event date has no start time.
	defaultStartTime = "10:00"
	// defaultDuration is the assumed event length; CSuite has no end time.
	defaultDuration = 2 * time.Hour
	// externalIDPrefix namespaces CSuite-imported events in HubSpot.
	externalIDPrefix = "csuite-"

	eventDateTimeLayout = "2006-01-02 15:04"
	hubspotTimeLayout   = "2006-01-02T15:04:00.000Z"
)

// eventTypeMapping maps CSuite event type codes to HubSpot event types.
var eventTypeMapping = map[string]string{
	"event":      "Conference",
	"webinar":    "Webinar",
	"fundraiser": "Charity & Causes",
	"gala":       "Charity & Causes",
	"workshop":   "Workshop",
	"meeting":    "Meeting",
}

// EventResult is the tally returned by one event sync run.
type EventResult struct {
	RunID           string   `json:"run_id"`
	Created         int      `json:"created"`
	SkippedExists   int      `json:"skipped_exists"`
	SkippedArchived int      `json:"skipped_archived"`
	SkippedPast     int      `json:"skipped_past"`
	Errors          int      `json:"errors"`
	Details         []string `json:"details,omitempty"`
}

// EventSync imports CSuite event dates as HubSpot marketing events,
// deduplicated by external event id.
type EventSync struct {
	source  FundSource
	crm     CRM
	ownerID string

	// SkipArchived drops archived source events; FutureOnly drops events
	// dated before today. Both default on.
	SkipArchived bool
	FutureOnly   bool

	now func() time.Time
}

// NewEventSync creates an event sync over the given clients. ownerID is
// the HubSpot owner assigned to every imported event.
func NewEventSync(source FundSource, crm CRM, ownerID string) *EventSync {
	return &EventSync{
		source:       source,
		crm:          crm,
		ownerID:      ownerID,
		SkipArchived: true,
		FutureOnly:   true,
		now:          time.Now,
	}
}

// formatEventDateTime combines a CSuite date and optional HH:MM start time
// into HubSpot's ISO 8601 form. Returns "" for missing or invalid input.
func formatEventDateTime(dateStr, timeStr string) string {
	if dateStr == "" {
		return ""
	}
	if timeStr == "" {
		timeStr = defaultStartTime
	}
	t, err := time.Parse(eventDateTimeLayout, dateStr+" "+timeStr)
	if err != nil {
		logger.Warn("invalid event date/time", "date", dateStr, "time", timeStr)
		return ""
	}
	return t.Format(hubspotTimeLayout)
}

// eventEndTime adds the default duration to a formatted start time.
func eventEndTime(startDateTime string) string {
	if startDateTime == "" {
		return ""
	}
	t, err := time.Parse(hubspotTimeLayout, startDateTime)
	if err != nil {
		return ""
	}
	return t.Add(defaultDuration).Format(hubspotTimeLayout)
}

// mapEventType translates a CSuite event type code to a HubSpot event
// type, defaulting to "Other".
func mapEventType(code string) string {
	if mapped, ok := eventTypeMapping[strings.ToLower(code)]; ok {
		return mapped
	}
	return "Other"
}

// externalEventID derives the dedup key for a CSuite event date.
func externalEventID(ev csuite.EventDate) string {
	id := ev.EventDateID.String()
	if id == "" {
		id = ev.EventID.String()
	}
	if id == "" {
		id = "unknown"
	}
	return externalIDPrefix + id
}

// BuildMarketingEvent converts a CSuite event date into a HubSpot
// marketing event. The CSuite event_name is generic ("Event - Other"), so
// the description is preferred as the display name.
func BuildMarketingEvent(ev csuite.EventDate, ownerID string) hubspot.MarketingEvent {
	name := ev.EventDescription
	if name == "" {
		name = ev.EventName
	}
	if name == "" {
		name = "Unnamed Event"
	}

	event := hubspot.MarketingEvent{
		EventName:       name,
		EventOrganizer:  ownerID,
		ExternalEventID: externalEventID(ev),
		EventType:       mapEventType(ev.EventTypeCode),
	}

	if start := formatEventDateTime(ev.EventDate, ev.StartTime); start != "" {
		event.StartDateTime = start
		event.EndDateTime = eventEndTime(start)
	}
	if ev.Location != "" {
		event.CustomProperties = []hubspot.CustomProperty{
			{Name: "location", Value: ev.Location},
		}
	}
	return event
}

// eventExists probes HubSpot for an event with the given external id.
// A failed lookup reads as "does not exist": a duplicate is preferable to
// silently blocking a legitimate import.
func (s *EventSync) eventExists(ctx context.Context, externalID string) bool {
	event, err := s.crm.GetMarketingEventByExternalID(ctx, externalID)
	return err == nil && event.EventName != ""
}

// Sync runs the full event sync and returns the tally.
func (s *EventSync) Sync(ctx context.Context, opts Options) EventResult {
	res := EventResult{RunID: uuid.NewString()}

	logger.Info("starting event sync", "run_id", res.RunID, "dry_run", opts.DryRun, "quick", opts.Quick)

	events, err := FetchAll(ctx, s.source.ListEventDates, FetchOptions{Limit: opts.fetchLimit()})
	if err != nil && len(events) == 0 {
		logger.Error("failed to fetch CSuite events", "error", err)
		res.Errors++
		res.Details = append(res.Details, fmt.Sprintf("CSuite error: %v", err))
		return res
	}
	logger.Info("events fetched", "count", len(events))

	if len(events) == 0 {
		res.Details = append(res.Details, "No events found in CSuite")
		return res
	}

	today := s.now().Format("2006-01-02")

	for _, ev := range events {
		name := ev.EventDescription
		if name == "" {
			name = ev.EventName
		}

		if s.SkipArchived && ev.Archived.Bool() {
			res.SkippedArchived++
			logger.Debug("skipping archived event", "event", name)
			continue
		}

		// ISO dates are fixed-width zero-padded, so string comparison is
		// chronological. A missing date is never "past".
		if s.FutureOnly && ev.EventDate != "" && ev.EventDate < today {
			res.SkippedPast++
			logger.Debug("skipping past event", "event", name, "date", ev.EventDate)
			continue
		}

		hsEvent := BuildMarketingEvent(ev, s.ownerID)

		if s.eventExists(ctx, hsEvent.ExternalEventID) {
			res.SkippedExists++
			logger.Debug("event already exists", "event", name)
			continue
		}

		if opts.DryRun {
			logger.Info("[dry run] would create event", "event", name)
			res.Created++
			res.Details = append(res.Details, "Would create: "+name)
			continue
		}

		if err := s.crm.CreateMarketingEvent(ctx, hsEvent); err != nil {
			res.Errors++
			logger.Error("event create failed", "event", name, "error", err)
			res.Details = append(res.Details, fmt.Sprintf("Error creating %s: %v", name, err))
			continue
		}
		res.Created++
		logger.Info("event created", "event", name)
		res.Details = append(res.Details, "Created: "+name)
	}

	logger.Info("event sync complete",
		"created", res.Created,
		"skipped_exists", res.SkippedExists,
		"skipped_archived", res.SkippedArchived,
		"skipped_past", res.SkippedPast,
		"errors", res.Errors)
	return res
}
