package court

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsStoriesVerbatim(t *testing.T) {
	dispute := Dispute{
		StoryA: "They said \"it's fine\" and then\ncancelled twice. 🦉",
		StoryB: "  My week was packed and I told them so.  ",
		Tone:   ToneDirect,
	}

	prompt := BuildPrompt(dispute)

	if !strings.HasPrefix(prompt.User, "Tone: Direct\n") {
		t.Fatalf("expected tone line, got %q", prompt.User)
	}
	if !strings.Contains(prompt.User, "Person A says:") {
		t.Fatal("missing Person A label")
	}
	if !strings.Contains(prompt.User, "Person B says:") {
		t.Fatal("missing Person B label")
	}
	// stories go in untouched, whitespace and all
	if !strings.Contains(prompt.User, dispute.StoryA) {
		t.Fatalf("story A not embedded verbatim: %q", prompt.User)
	}
	if !strings.Contains(prompt.User, dispute.StoryB) {
		t.Fatalf("story B not embedded verbatim: %q", prompt.User)
	}
}

func TestBuildPromptSystemContract(t *testing.T) {
	prompt := BuildPrompt(Dispute{StoryA: "a", StoryB: "b", Tone: ToneGentle})

	required := []string{
		"mediator",
		"Do not take sides",
		`"summary"`,
		`"shareA"`,
		`"shareB"`,
		`"adviceA"`,
		`"adviceB"`,
		`"apologyTemplate"`,
		`"safety"`,
		"add up to exactly 100",
		"valid JSON only",
		"no markdown fences",
		"safety.flagged",
	}
	for _, want := range required {
		if !strings.Contains(prompt.System, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildPromptDefaultsTone(t *testing.T) {
	prompt := BuildPrompt(Dispute{StoryA: "a", StoryB: "b"})
	if !strings.HasPrefix(prompt.User, "Tone: Gentle\n") {
		t.Fatalf("expected gentle default, got %q", prompt.User)
	}
}

func TestBuildPromptReentrant(t *testing.T) {
	d := Dispute{StoryA: "same story", StoryB: "other story", Tone: ToneNeutral}
	first := BuildPrompt(d)
	second := BuildPrompt(d)
	if first != second {
		t.Fatal("expected identical prompts for identical disputes")
	}
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		input    string
		expected Tone
	}{
		{"", ToneGentle},
		{"gentle", ToneGentle},
		{"GENTLE", ToneGentle},
		{" Neutral ", ToneNeutral},
		{"direct", ToneDirect},
		{"judge", ToneGentle},
	}
	for _, tc := range tests {
		if got := ParseTone(tc.input); got != tc.expected {
			t.Errorf("ParseTone(%q): expected %q got %q", tc.input, tc.expected, got)
		}
	}
}

func TestToneLabel(t *testing.T) {
	if ToneDirect.Label() != "Direct" {
		t.Fatalf("expected Direct got %q", ToneDirect.Label())
	}
	if Tone("").Label() != "Gentle" {
		t.Fatalf("expected Gentle default got %q", Tone("").Label())
	}
}
