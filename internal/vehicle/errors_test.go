package vehicle

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, ""},
		{"not found", newLookupError(FailureNotFound, "A", 404, ErrNotFound), FailureNotFound},
		{"wrapped unavailable", fmt.Errorf("enrich: %w", newLookupError(FailureServiceUnavailable, "A", 503, nil)), FailureServiceUnavailable},
		{"plain error", errors.New("boom"), FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupError_Is(t *testing.T) {
	err := newLookupError(FailureServiceUnavailable, "XYZ789", 502, errors.New("bad gateway"))

	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatal("expected errors.Is to match ErrServiceUnavailable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("did not expect errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrOther) {
		t.Fatal("did not expect errors.Is to match ErrOther")
	}
}

func TestLookupError_Error(t *testing.T) {
	err := newLookupError(FailureNotFound, "ABC123", 404, nil)
	if got := err.Error(); got != "vehicle lookup ABC123 [not_found]" {
		t.Fatalf("unexpected message %q", got)
	}
}
