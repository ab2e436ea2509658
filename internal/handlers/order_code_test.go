package handlers

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateOrderCodeFormat(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		code := generateOrderCode(now)
		if !orderCodePattern.MatchString(code) {
			t.Fatalf("unexpected order code format: %s", code)
		}
		if !strings.HasPrefix(code, "TRY-20240131-") {
			t.Fatalf("expected date segment in code, got %s", code)
		}
	}
}
