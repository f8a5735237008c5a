package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Fanyang77/AI-friendship-court/internal/text"
)

const severeThreshold = 4

// SafetyResult captures keyword screening output for a pair of stories.
type SafetyResult struct {
	Severity   int      `json:"severity"`
	Categories []string `json:"categories"`
}

// Severe reports whether the screening found terms serious enough to
// warrant a support message rather than a normal verdict.
func (r SafetyResult) Severe() bool {
	return r.Severity >= severeThreshold
}

// SafetyScanner screens story text against severity-tiered term lists.
type SafetyScanner struct {
	terms map[int][]string
}

// NewSafetyScanner constructs a scanner. An empty path yields the built-in
// term lists; a JSON file of {"severity": ["term", ...]} entries is merged
// on top so the baseline terms are never lost to a sparse override.
func NewSafetyScanner(path string) (*SafetyScanner, error) {
	terms := defaultSafetyTerms()
	if strings.TrimSpace(path) != "" {
		loaded, err := loadSafetyTerms(path)
		if err != nil {
			return nil, err
		}
		for severity, list := range loaded {
			terms[severity] = mergeTerms(terms[severity], list)
		}
	}
	return &SafetyScanner{terms: terms}, nil
}

// Scan inspects the supplied story profiles and reports the highest
// severity tier with at least one hit.
func (s *SafetyScanner) Scan(profiles ...text.Profile) SafetyResult {
	if s == nil {
		return SafetyResult{}
	}

	for severity := 5; severity >= 1; severity-- {
		var hits []string
		for _, term := range s.terms[severity] {
			for _, profile := range profiles {
				if profile.Folded == "" {
					continue
				}
				if termHits(profile, term) {
					hits = append(hits, term)
					break
				}
			}
		}
		if len(hits) > 0 {
			sort.Strings(hits)
			return SafetyResult{Severity: severity, Categories: hits}
		}
	}

	return SafetyResult{}
}

// Validate ensures the scanner has at least baseline configuration.
func (s *SafetyScanner) Validate() error {
	if s == nil {
		return errors.New("safety scanner is nil")
	}
	if len(s.terms) == 0 {
		return errors.New("safety terms missing")
	}
	return nil
}

// termHits matches multi-word terms as substrings and single words as
// whole tokens, so "hit" does not fire inside "architect".
func termHits(profile text.Profile, term string) bool {
	if strings.Contains(term, " ") {
		return strings.Contains(profile.Folded, term)
	}
	for _, token := range profile.Tokens {
		if token == term {
			return true
		}
	}
	return false
}

func loadSafetyTerms(path string) (map[int][]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read safety terms: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal safety terms: %w", err)
	}
	terms := make(map[int][]string)
	for key, list := range raw {
		severity, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || severity < 1 || severity > 5 {
			continue
		}
		var cleaned []string
		for _, term := range list {
			term = normalizeTerm(term)
			if term != "" {
				cleaned = append(cleaned, term)
			}
		}
		if len(cleaned) > 0 {
			terms[severity] = cleaned
		}
	}
	return terms, nil
}

func mergeTerms(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	out := append([]string{}, base...)
	for _, term := range base {
		seen[term] = struct{}{}
	}
	for _, term := range extra {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

func defaultSafetyTerms() map[int][]string {
	return map[int][]string{
		5: {
			"kill myself",
			"end my life",
			"suicide",
			"suicidal",
			"self harm",
			"hurt myself",
			"overdose",
		},
		4: {
			"hit me",
			"hits me",
			"beat me",
			"beats me",
			"choked",
			"punched me",
			"threatened me",
			"threatens me",
			"scared of him",
			"scared of her",
			"scared of them",
			"stalking",
			"stalked",
			"abusive",
			"abuse",
			"violent",
			"violence",
		},
		3: {
			"harassment",
			"harassing",
			"harassed",
			"blackmail",
			"revenge",
			"threat",
			"threats",
		},
		2: {
			"screaming at me",
			"rage",
			"furious",
		},
		1: {
			"ghosted",
			"silent treatment",
			"blocked me",
		},
	}
}
