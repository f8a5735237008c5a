package court

import (
	"github.com/Fanyang77/AI-friendship-court/internal/scoring"
	"github.com/Fanyang77/AI-friendship-court/internal/text"
)

const (
	fallbackSummary = "From both perspectives, this looks like a mix of unmet expectations " +
		"and communication gaps rather than one person being purely right or wrong. " +
		"Both people had reasons for what they did, but those reasons weren't clearly shared."

	fallbackAdviceA = "Try to name what you needed earlier and out loud. Instead of waiting and " +
		"hoping they guess, say something like: \"This is important to me because...\". " +
		"That gives them a fair chance to respond."

	fallbackAdviceB = "Acknowledge the impact of your actions, even if you didn't mean harm. " +
		"You can say: \"I see how that hurt you, even though I didn't intend it.\" " +
		"Then share a bit of your own constraints calmly."

	fallbackApology = "Hey [name], I've been thinking about what happened. I'm sorry for the part " +
		"I played in how things went. I didn't mean to make you feel [how they felt]. Next time, " +
		"I'll try to be more clear about what I'm thinking and I'll check in with you sooner " +
		"instead of letting the tension build up."
)

// Fallback fabricates a verdict without calling any model. The split is a
// pure function of the two story lengths, so repeated calls for the same
// dispute always agree. It inspects no content: the safety flag stays unset
// here, which is a stated limitation of this path.
func Fallback(d Dispute) Verdict {
	return fallbackVerdict(text.Normalize(d.StoryA), text.Normalize(d.StoryB))
}

func fallbackVerdict(a, b text.Profile) Verdict {
	shareA, shareB := scoring.SplitShares(a.Runes, b.Runes)

	return Verdict{
		Summary:         fallbackSummary,
		ShareA:          shareA,
		ShareB:          shareB,
		AdviceA:         fallbackAdviceA,
		AdviceB:         fallbackAdviceB,
		ApologyTemplate: fallbackApology,
		Safety:          Safety{},
		Source:          SourceHeuristic,
	}
}
