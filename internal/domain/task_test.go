package domain

import "testing"

func TestParseStatus_KnownColumns(t *testing.T) {
	for _, raw := range []string{"TODO", "DOING", "DONE"} {
		s, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", raw)
		}
		if s.String() != raw {
			t.Fatalf("expected %q, got %q", raw, s.String())
		}
	}
}

func TestParseStatus_RejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "todo", "DO", "ARCHIVED", "done "} {
		if _, err := ParseStatus(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestStatus_ZeroValueInvalid(t *testing.T) {
	var s Status
	if s.Valid() {
		t.Fatalf("zero value must not be a valid status")
	}
}
