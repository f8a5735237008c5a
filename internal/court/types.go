package court

import (
	"context"
	"strings"
)

// Tone selects how the judge talks. It changes delivery only, never the
// fairness of the verdict.
type Tone string

const (
	ToneGentle  Tone = "gentle"
	ToneNeutral Tone = "neutral"
	ToneDirect  Tone = "direct"
)

// ParseTone maps free-form input onto a known tone. Unknown or empty
// values fall back to the gentle default.
func ParseTone(value string) Tone {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ToneNeutral):
		return ToneNeutral
	case string(ToneDirect):
		return ToneDirect
	default:
		return ToneGentle
	}
}

// Label returns the capitalized form used in prompts and responses.
func (t Tone) Label() string {
	switch t {
	case ToneNeutral:
		return "Neutral"
	case ToneDirect:
		return "Direct"
	default:
		return "Gentle"
	}
}

// Tones lists the supported judge styles in presentation order.
func Tones() []Tone {
	return []Tone{ToneGentle, ToneNeutral, ToneDirect}
}

// Source records which path produced a verdict.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// Dispute carries both perspectives of one conflict. Stories are embedded
// in the prompt verbatim, so they stay untouched here.
type Dispute struct {
	StoryA string
	StoryB string
	Tone   Tone
}

// Safety marks stories that need real-world support rather than a playful
// verdict. Message is non-empty exactly when Flagged is set.
type Safety struct {
	Flagged bool
	Message string
}

// Verdict is the structured judgment for one dispute. ShareA and ShareB
// always sum to exactly 100.
type Verdict struct {
	Summary         string
	ShareA          int
	ShareB          int
	AdviceA         string
	AdviceB         string
	ApologyTemplate string
	Safety          Safety
	Source          Source
}

// Mediator produces verdicts for disputes.
type Mediator interface {
	Enabled() bool
	Mediate(ctx context.Context, dispute Dispute) (Verdict, error)
}
