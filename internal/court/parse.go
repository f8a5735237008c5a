package court

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrMalformed reports model output that is not parseable JSON.
	ErrMalformed = errors.New("verdict payload is not valid json")
	// ErrSchema reports JSON that parses but breaks the verdict contract.
	ErrSchema = errors.New("verdict payload violates schema")
)

// verdictWire mirrors the JSON schema the model is instructed to emit.
// Pointer fields distinguish absent keys from zero values.
type verdictWire struct {
	Summary         *string     `json:"summary"`
	ShareA          *float64    `json:"shareA"`
	ShareB          *float64    `json:"shareB"`
	AdviceA         *string     `json:"adviceA"`
	AdviceB         *string     `json:"adviceB"`
	ApologyTemplate *string     `json:"apologyTemplate"`
	Safety          *safetyWire `json:"safety"`
}

type safetyWire struct {
	Flagged *bool   `json:"flagged"`
	Message *string `json:"message"`
}

// ParseVerdict turns raw completion output into a validated, normalized
// verdict. It tolerates markdown fences and prose around the JSON object,
// but every schema field is checked before anything is trusted. The
// returned verdict carries no source tag; the caller owns that.
func ParseVerdict(raw string) (Verdict, error) {
	content := normalizeJSONBlock(raw)
	if content == "" {
		return Verdict{}, fmt.Errorf("empty payload: %w", ErrMalformed)
	}

	var wire verdictWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Verdict{}, fmt.Errorf("field %q has wrong type: %w", typeErr.Field, ErrSchema)
		}
		return Verdict{}, fmt.Errorf("%v: %w", err, ErrMalformed)
	}

	if wire.Summary == nil {
		return Verdict{}, fmt.Errorf("summary missing: %w", ErrSchema)
	}
	if wire.ShareA == nil || wire.ShareB == nil {
		return Verdict{}, fmt.Errorf("responsibility shares missing: %w", ErrSchema)
	}
	if wire.AdviceA == nil || wire.AdviceB == nil {
		return Verdict{}, fmt.Errorf("advice missing: %w", ErrSchema)
	}
	if wire.ApologyTemplate == nil {
		return Verdict{}, fmt.Errorf("apology template missing: %w", ErrSchema)
	}
	if wire.Safety == nil || wire.Safety.Flagged == nil {
		return Verdict{}, fmt.Errorf("safety block missing: %w", ErrSchema)
	}

	adviceA := strings.TrimSpace(*wire.AdviceA)
	adviceB := strings.TrimSpace(*wire.AdviceB)
	if adviceA == "" || adviceB == "" {
		return Verdict{}, fmt.Errorf("advice empty: %w", ErrSchema)
	}

	shareA, shareB, err := normalizeShares(*wire.ShareA, *wire.ShareB)
	if err != nil {
		return Verdict{}, err
	}

	safety := Safety{Flagged: *wire.Safety.Flagged}
	if safety.Flagged {
		if wire.Safety.Message == nil || strings.TrimSpace(*wire.Safety.Message) == "" {
			return Verdict{}, fmt.Errorf("safety flagged without message: %w", ErrSchema)
		}
		safety.Message = strings.TrimSpace(*wire.Safety.Message)
	}

	return Verdict{
		Summary:         strings.TrimSpace(*wire.Summary),
		ShareA:          shareA,
		ShareB:          shareB,
		AdviceA:         adviceA,
		AdviceB:         adviceB,
		ApologyTemplate: strings.TrimSpace(*wire.ApologyTemplate),
		Safety:          safety,
	}, nil
}

// normalizeShares clamps both values into [0,100] and rescales the pair so
// it sums to exactly 100 while preserving the ratio within rounding. A pair
// that clamps to a zero sum cannot be rescaled and is rejected.
func normalizeShares(a, b float64) (int, int, error) {
	a = clampFloat(a, 0, 100)
	b = clampFloat(b, 0, 100)
	total := a + b
	if total <= 0 {
		return 0, 0, fmt.Errorf("responsibility shares sum to zero: %w", ErrSchema)
	}
	shareA := int(math.Round(a * 100 / total))
	return shareA, 100 - shareA, nil
}

func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

func clampFloat(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
