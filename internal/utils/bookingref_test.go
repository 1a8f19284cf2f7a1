package utils

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewBookingRef(t *testing.T) {
	at := time.UnixMilli(1767139200000)
	ref := NewBookingRef(at)

	if !strings.HasPrefix(ref, "YAMU-") {
		t.Fatalf("ref %q lacks prefix", ref)
	}

	encoded := strings.TrimPrefix(ref, "YAMU-")
	if encoded != strings.ToUpper(encoded) {
		t.Fatalf("ref %q is not uppercase", ref)
	}
	back, err := strconv.ParseInt(strings.ToLower(encoded), 36, 64)
	if err != nil {
		t.Fatalf("ref %q does not decode as base 36: %v", ref, err)
	}
	if back != at.UnixMilli() {
		t.Fatalf("decoded %d, want %d", back, at.UnixMilli())
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("077-123 4567"); got != "0771234567" {
		t.Fatalf("DigitsOnly = %q", got)
	}
}
