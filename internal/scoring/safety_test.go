package scoring

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Fanyang77/AI-friendship-court/internal/text"
)

func TestSafetyScannerDefaults(t *testing.T) {
	scanner, err := NewSafetyScanner("")
	if err != nil {
		t.Fatalf("safety scanner: %v", err)
	}

	tests := []struct {
		name           string
		story          string
		expectSeverity int
		expectSevere   bool
	}{
		{"self harm", "Sometimes I think I should just kill myself over this.", 5, true},
		{"violence", "Last week he hit me in front of everyone.", 4, true},
		{"harassment", "The harassment has not stopped since the party.", 3, false},
		{"low tier", "She ghosted me for two weeks.", 1, false},
		{"clean", "We argued about who pays for dinner.", 0, false},
		{"no substring false positive", "The architect redesigned our shared flat.", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := scanner.Scan(text.Normalize(tc.story))
			if result.Severity != tc.expectSeverity {
				t.Fatalf("expected severity %d got %d", tc.expectSeverity, result.Severity)
			}
			if result.Severe() != tc.expectSevere {
				t.Fatalf("expected severe=%v got %v", tc.expectSevere, result.Severe())
			}
		})
	}
}

func TestSafetyScannerScansBothStories(t *testing.T) {
	scanner, err := NewSafetyScanner("")
	if err != nil {
		t.Fatalf("safety scanner: %v", err)
	}

	clean := text.Normalize("I forgot to reply to a message.")
	flagged := text.Normalize("He threatened me when I brought it up.")

	result := scanner.Scan(clean, flagged)
	if !result.Severe() {
		t.Fatalf("expected severe result, got severity %d", result.Severity)
	}
}

func TestSafetyScannerMergesOverrideFile(t *testing.T) {
	override := map[string][]string{
		"5": {"  Custom CRISIS term "},
		"9": {"ignored"},
	}
	scanner, err := NewSafetyScanner(tempJSON(t, override))
	if err != nil {
		t.Fatalf("safety scanner: %v", err)
	}

	if res := scanner.Scan(text.Normalize("this is a custom crisis term in my story")); res.Severity != 5 {
		t.Fatalf("expected override term to score 5, got %d", res.Severity)
	}
	if res := scanner.Scan(text.Normalize("I want to kill myself")); res.Severity != 5 {
		t.Fatalf("expected baseline term to survive merge, got %d", res.Severity)
	}
}

func TestSafetyScannerNil(t *testing.T) {
	var scanner *SafetyScanner
	if res := scanner.Scan(text.Normalize("he hit me")); res.Severity != 0 {
		t.Fatalf("nil scanner must not flag, got %d", res.Severity)
	}
	if err := scanner.Validate(); err == nil {
		t.Fatal("expected validate error for nil scanner")
	}
}

func tempJSON(t *testing.T, value any) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "safety-*.json")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return f.Name()
}
