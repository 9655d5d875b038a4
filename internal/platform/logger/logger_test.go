package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"learner_id", "4b1c7a52-5d0e-4c57-9b8e-0d1f7a3c2e11",
		"bio", "Senior engineer teaching React",
		"limit", 10,
		"dangling",
	})
	if len(got) != 7 {
		t.Fatalf("unexpected length: %d", len(got))
	}
	if s, _ := got[1].(string); !strings.HasPrefix(s, "hash:") {
		t.Fatalf("learner_id not hashed: %v", got[1])
	}
	if got[3] != "[REDACTED]" {
		t.Fatalf("bio not redacted: %v", got[3])
	}
	if got[5] != 10 {
		t.Fatalf("limit changed: %v", got[5])
	}
	if got[6] != "dangling" {
		t.Fatalf("dangling key dropped: %v", got[6])
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("service", "x").Info("discarded", "k", "v")
	l.Sync()
}
