package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsSurviveWrapping(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("flush: %w", Storage("store.save", base))

	if !IsStorage(err) {
		t.Fatalf("expected storage kind through wrapping")
	}
	if IsValidation(err) || IsExternal(err) {
		t.Fatalf("unexpected kind match")
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected underlying error to unwrap")
	}
}

func TestValidationMessage(t *testing.T) {
	err := Validation("note.commit", "id", "required")
	if got := err.Error(); got != "note.commit: validation (id): required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNilWrapping(t *testing.T) {
	if Storage("x", nil) != nil || External("x", nil) != nil {
		t.Fatalf("nil errors must stay nil")
	}
}
