package api

import (
	"time"

	"github.com/Fanyang77/AI-friendship-court/internal/court"
)

// MediateRequest carries both sides of a dispute plus the requested
// judge tone.
type MediateRequest struct {
	StoryA string `json:"story_a"`
	StoryB string `json:"story_b"`
	Tone   string `json:"tone"`
}

// SafetyDTO mirrors court.Safety with a nullable message so the
// frontend can key on JSON null instead of empty strings.
type SafetyDTO struct {
	Flagged bool    `json:"flagged"`
	Message *string `json:"message"`
}

// VerdictDTO is the API representation of a mediated verdict.
type VerdictDTO struct {
	CaseID          string    `json:"case_id"`
	Summary         string    `json:"summary"`
	ShareA          int       `json:"share_a"`
	ShareB          int       `json:"share_b"`
	AdviceA         string    `json:"advice_a"`
	AdviceB         string    `json:"advice_b"`
	ApologyTemplate string    `json:"apology_template"`
	Safety          SafetyDTO `json:"safety"`
	Source          string    `json:"source"`
	Tone            string    `json:"tone"`
	ProcessingMs    int64     `json:"processing_time_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromVerdict converts a court.Verdict into the DTO representation.
func FromVerdict(caseID string, tone court.Tone, v court.Verdict, elapsedMs int64) VerdictDTO {
	safety := SafetyDTO{Flagged: v.Safety.Flagged}
	if v.Safety.Flagged && v.Safety.Message != "" {
		message := v.Safety.Message
		safety.Message = &message
	}
	return VerdictDTO{
		CaseID:          caseID,
		Summary:         v.Summary,
		ShareA:          v.ShareA,
		ShareB:          v.ShareB,
		AdviceA:         v.AdviceA,
		AdviceB:         v.AdviceB,
		ApologyTemplate: v.ApologyTemplate,
		Safety:          safety,
		Source:          string(v.Source),
		Tone:            string(tone),
		ProcessingMs:    elapsedMs,
		CreatedAt:       time.Now().UTC(),
	}
}
