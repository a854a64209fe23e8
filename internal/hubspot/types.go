package hubspot

// Contact is a CRM contact record.
type Contact struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// contactSearchRequest is the CRM v3 search payload.
type contactSearchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type contactSearchResponse struct {
	Total   int       `json:"total"`
	Results []Contact `json:"results"`
}

// CustomProperty is a name/value pair attached to a marketing event.
type CustomProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MarketingEvent is a marketing-event record. ExternalEventID is the
// deduplication key for records imported from CSuite.
type MarketingEvent struct {
	EventName        string           `json:"eventName"`
	EventOrganizer   string           `json:"eventOrganizer"`
	ExternalEventID  string           `json:"externalEventId"`
	EventType        string           `json:"eventType,omitempty"`
	StartDateTime    string           `json:"startDateTime,omitempty"`
	EndDateTime      string           `json:"endDateTime,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty"`
}

// SubscriptionStatus is one subscription-type state for a contact.
type SubscriptionStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SubscriptionStatuses is the communication-preferences status response.
type SubscriptionStatuses struct {
	Recipient            string               `json:"recipient"`
	SubscriptionStatuses []SubscriptionStatus `json:"subscriptionStatuses"`
}

// StatusSubscribed is the subscription state HubSpot reports for an
// opted-in contact.
const StatusSubscribed = "SUBSCRIBED"

// apiError is HubSpot's standard error body.
type apiError struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Category string `json:"category"`
}
