package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := Storage(errors.New("disk full"), "persist history")
	wrapped := fmt.Errorf("append entry: %w", base)

	if got := KindOf(wrapped); got != KindStorage {
		t.Fatalf("KindOf(wrapped) = %v, want %v", got, KindStorage)
	}
	if !IsKind(wrapped, KindStorage) {
		t.Fatalf("IsKind(wrapped, KindStorage) = false")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Fatalf("KindOf(plain) = %v, want %v", got, KindUnknown)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Fatalf("KindOf(nil) = %v, want %v", got, KindUnknown)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Gateway(errors.New("status 503"), "translate request")
	want := "translate request: status 503"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NotFound("history entry %q not found", "abc")
	if bare.Error() != `history entry "abc" not found` {
		t.Fatalf("Error() = %q", bare.Error())
	}
}
