package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Profile captures the normalization output for one party's story.
type Profile struct {
	Raw    string
	Clean  string
	Folded string
	Runes  int
	Tokens []string
}

// Normalize trims and tokenizes the supplied story text. Runes counts the
// characters of the trimmed text, which keeps length math stable for
// multibyte input.
func Normalize(input string) Profile {
	clean := strings.TrimSpace(input)
	folded := strings.ToLower(clean)

	return Profile{
		Raw:    input,
		Clean:  clean,
		Folded: folded,
		Runes:  utf8.RuneCountInString(clean),
		Tokens: splitWords(folded),
	}
}

// Empty reports whether the story carried no visible content.
func (p Profile) Empty() bool {
	return p.Runes == 0
}

func splitWords(folded string) []string {
	parts := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	var out []string
	for _, part := range parts {
		part = strings.Trim(part, "'")
		if part == "" {
			continue
		}
		out = appendUnique(out, part)
	}
	return out
}

func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
