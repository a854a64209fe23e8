package csuite

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexID is an identifier that CSuite returns as a JSON number in the v2
// API and as a string in older responses. It decodes both into a string.
type FlexID string

// UnmarshalJSON accepts a string, number, or null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the identifier as a string, "" when absent.
func (f FlexID) String() string { return string(f) }

// FlexInt is an integer flag that may arrive as a number, a quoted number,
// or null. Unparseable values decode to zero.
type FlexInt int

// UnmarshalJSON accepts a number, string, or null.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FlexBool is a boolean flag that may arrive as true/false, 0/1, or a
// quoted variant of either.
type FlexBool bool

// UnmarshalJSON accepts a bool, number, string, or null.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Bool returns the flag as a plain bool.
func (f FlexBool) Bool() bool { return bool(f) }

// Profile is a donor/contact record in CSuite. Read-only snapshot; the sync
// subsystem never mutates profiles.
type Profile struct {
	ProfileID    FlexID  `json:"profile_id"`
	PrimaryEmail string  `json:"primary_email"`
	Name         string  `json:"name"`
	Newsletter   FlexInt `json:"newsletter"`
}

// Donation is a financial record in CSuite. Amount stays a string at this
// boundary; the aggregator owns the tolerant decimal parse.
type Donation struct {
	ProfileID FlexID `json:"profile_id"`
	Amount    string `json:"donation_amount"`
	Date      string `json:"donation_date"`
	FundName  string `json:"fund_name"`
}

// EventDate is a scheduled occurrence of a CSuite event.
type EventDate struct {
	EventDateID      FlexID   `json:"event_date_id"`
	EventID          FlexID   `json:"event_id"`
	EventName        string   `json:"event_name"`
	EventDescription string   `json:"event_description"`
	EventDate        string   `json:"event_date"`
	StartTime        string   `json:"start_time"`
	EventTypeCode    string   `json:"event_type_code"`
	Location         string   `json:"location"`
	Archived         FlexBool `json:"archived"`
}
