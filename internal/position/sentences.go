package position

import "strings"

// abbreviations whose trailing period does not end a sentence
var abbreviations = map[string]struct{}{
	"exp": {},
	"vs":  {},
}

// normalize replaces line breaks with spaces
func normalize(text string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
}

// splitSentences splits after '.', '!' or '?' followed by whitespace
func splitSentences(text string) []string {
	var out []string
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		if i+1 >= len(text) || !isSpace(text[i+1]) {
			continue
		}
		if text[i] == '.' && endsWithAbbreviation(text[start:i]) {
			continue
		}

		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

func endsWithAbbreviation(s string) bool {
	word := s
	if i := strings.LastIndexAny(s, " \t"); i >= 0 {
		word = s[i+1:]
	}
	_, ok := abbreviations[strings.ToLower(word)]
	return ok
}
