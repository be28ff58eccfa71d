package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("open /home/alice/movie.webp: permission denied")
	err := New(KindMedia, "media not readable", sentinel)
	if got := PublicMessage(err); got != "media not readable" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "media not readable")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestDefaultSafeMessage(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindScheduler, "Could not arm the overlay hide timer."},
		{KindConfig, "Invalid configuration."},
		{KindMedia, "Media source could not be opened."},
		{KindFile, "File could not be written."},
		{Kind("other"), "Operation failed."},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			if got := New(tc.kind, "  ", nil).Error(); got != tc.want {
				t.Fatalf("New(%q).Error() = %q, want %q", tc.kind, got, tc.want)
			}
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("initialize overlays: %w", Scheduler(errors.New("closed")))
	kind, ok := KindOf(err)
	if !ok || kind != KindScheduler {
		t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, KindScheduler)
	}
	if !IsFatal(err) {
		t.Fatalf("expected scheduler error to be fatal")
	}
	if IsFatal(Config("bad", nil)) {
		t.Fatalf("config error should not be fatal")
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
	if got := PublicMessage(nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q, want empty", got)
	}
}
