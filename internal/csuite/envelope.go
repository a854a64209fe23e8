package csuite

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Two generations of the CSuite API are in the wild: v2 wraps results as
// {success:1, data:{results:[...]}, errors:[...]} while the earlier one
// returns {results:[...]} directly. unwrapPage normalizes both into a
// single page shape before any typed decoding happens.

type page struct {
	OK      bool
	Records []json.RawMessage
	ErrMsg  string
}

type envelope struct {
	Success json.RawMessage `json:"success"`
	Data    struct {
		Results []json.RawMessage `json:"results"`
	} `json:"data"`
	Results []json.RawMessage `json:"results"`
	Errors  []string          `json:"errors"`
}

func unwrapPage(body []byte) (*page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	// Bare-results generation: no success flag at all.
	if len(env.Success) == 0 {
		return &page{OK: true, Records: env.Results}, nil
	}

	if !truthy(env.Success) {
		msg := "unknown error"
		if len(env.Errors) > 0 {
			msg = env.Errors[0]
		}
		return &page{OK: false, ErrMsg: msg}, nil
	}

	return &page{OK: true, Records: env.Data.Results}, nil
}

// truthy reports whether the raw success flag is 1 or true. The flag has
// been observed both as a number and as a bool.
func truthy(raw json.RawMessage) bool {
	s := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	return s == "1" || s == "true"
}
