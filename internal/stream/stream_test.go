package stream

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"orders", false},
		{"", true},
		{"has:colon", true},
		{"has space", true},
		{"tab\ttab", true},
	}
	for _, c := range cases {
		err := ValidateName(c.name, 0)
		if c.wantErr && err == nil {
			t.Errorf("ValidateName(%q): expected error", c.name)
		}
		if !c.wantErr && err != nil {
			t.Errorf("ValidateName(%q): unexpected error: %v", c.name, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidStreamName) {
			t.Errorf("ValidateName(%q): error not wrapped as ErrInvalidStreamName: %v", c.name, err)
		}
	}
}

func TestParseLiveOnly(t *testing.T) {
	sub, err := Parse("orders", 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Name != "orders" || !sub.LiveOnly() || sub.Bounded() {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestParseFromOnly(t *testing.T) {
	sub, err := Parse("orders:5", 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Name != "orders" || sub.LiveOnly() || sub.From != 5 || sub.Bounded() {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestParseBoundedRange(t *testing.T) {
	sub, err := Parse("orders:2:5", 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Name != "orders" || sub.From != 2 || !sub.Bounded() || sub.To != 5 {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestParseRejectsExtraColons(t *testing.T) {
	_, err := Parse("orders:1:2:3", 0)
	if !errors.Is(err, ErrInvalidSubscription) {
		t.Fatalf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestParseRejectsNonDecimalBounds(t *testing.T) {
	if _, err := Parse("orders:abc", 0); !errors.Is(err, ErrInvalidSubscription) {
		t.Fatalf("expected ErrInvalidSubscription for bad from, got %v", err)
	}
	if _, err := Parse("orders:1:xyz", 0); !errors.Is(err, ErrInvalidSubscription) {
		t.Fatalf("expected ErrInvalidSubscription for bad to, got %v", err)
	}
}

func TestParseRejectsInvalidName(t *testing.T) {
	if _, err := Parse(":5", 0); !errors.Is(err, ErrInvalidStreamName) {
		t.Fatalf("expected ErrInvalidStreamName, got %v", err)
	}
}

func TestValidateNameHonorsConfiguredMaxLength(t *testing.T) {
	if err := ValidateName("abcde", 4); !errors.Is(err, ErrInvalidStreamName) {
		t.Fatalf("expected ErrInvalidStreamName for a name over the configured limit, got %v", err)
	}
	if err := ValidateName("abcd", 4); err != nil {
		t.Fatalf("unexpected error at the configured limit: %v", err)
	}
	if err := ValidateName("abcd", 0); err != nil {
		t.Fatalf("unexpected error under DefaultMaxNameLength: %v", err)
	}
}
