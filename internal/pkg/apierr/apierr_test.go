package apierr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(New(Transport, "csuite.profile/list", "dial timeout")); got != Transport {
		t.Errorf("expected transport, got %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty kind for plain error, got %q", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("expected empty kind for nil, got %q", got)
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := Wrap(Config, "csuite.profile/list", errors.New("missing key"))
	outer := fmt.Errorf("sync failed: %w", inner)
	if !IsConfig(outer) {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("hubspot.SearchContactByEmail", "contact not found: %s", "a@b.org")
	if !IsNotFound(err) {
		t.Error("NotFound error should report IsNotFound")
	}
	if KindOf(err) != Domain {
		t.Errorf("NotFound should be a domain error, got %q", KindOf(err))
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("message must keep the not-found marker: %v", err)
	}
}

func TestIsNotFoundOnOtherDomainError(t *testing.T) {
	err := New(Domain, "hubspot.CreateMarketingEvent", "rate limited")
	if IsNotFound(err) {
		t.Error("plain domain error must not report IsNotFound")
	}
}

func TestErrorMessageCarriesOp(t *testing.T) {
	err := Wrap(Transport, "csuite.donation/list", errors.New("connection reset"))
	if !strings.Contains(err.Error(), "csuite.donation/list") {
		t.Errorf("message should name the operation: %v", err)
	}
	if !errors.Is(err, err.Unwrap()) {
		t.Error("Unwrap should expose the inner error")
	}
}
