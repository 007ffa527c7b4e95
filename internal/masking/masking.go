// Package masking redacts company and brand names from complaint text before
// it is shown publicly. A masked name keeps its first letter followed by
// "***", so "Trendyol siparişim gelmedi" reads "T*** siparişim gelmedi".
package masking

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ResolveMaskTargets builds the list of names to redact for one record: the
// declared brand plus any mentioned companies, trimmed, de-duplicated and
// ordered longest first so "Telekom" is masked before "Tel" can pre-empt it.
// Dedup is case-sensitive: differently cased spellings fire independently.
func ResolveMaskTargets(brandName string, mentioned []string) []string {
	seen := make(map[string]struct{})
	var targets []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		targets = append(targets, name)
	}

	add(brandName)
	for _, name := range mentioned {
		add(name)
	}

	sort.SliceStable(targets, func(i, j int) bool {
		return len(targets[i]) > len(targets[j])
	})

	return targets
}

// MaskText replaces each target in text with its mask, longest target first.
// Per target, all whole-word occurrences are replaced when at least one
// exists; otherwise all bare substring occurrences are, which catches names
// glued into compound tokens. Each target operates on the output of the
// previous one. Empty text or an empty target list returns text unchanged.
func MaskText(text string, targets []string) string {
	if text == "" || len(targets) == 0 {
		return text
	}
	for _, target := range targets {
		text = maskOne(text, target)
	}
	return text
}

// HasMention reports whether any target occurs in raw as a case-insensitive
// substring. This is deliberately looser than the masking match (no word
// boundary) and must be evaluated on the original text before masking.
func HasMention(raw string, targets []string) bool {
	if raw == "" || len(targets) == 0 {
		return false
	}
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if targetPattern(target).MatchString(raw) {
			return true
		}
	}
	return false
}

func maskOne(text, target string) string {
	target = strings.TrimSpace(target)
	if text == "" || target == "" {
		return text
	}

	re := targetPattern(target)
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var whole [][]int
	for _, loc := range locs {
		if wordBounded(text, loc[0], loc[1]) {
			whole = append(whole, loc)
		}
	}
	if len(whole) > 0 {
		locs = whole
	}

	return replaceSpans(text, locs, maskFor(target))
}

// targetPattern compiles a case-insensitive literal match for a target name.
// Targets are user data, so metacharacters are escaped before compiling.
func targetPattern(target string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))
}

// wordBounded reports whether text[start:end] is a whole word, using Unicode
// letter/digit classes. RE2's \b is ASCII-only, which misclassifies Turkish
// letters like ı and ş as boundaries, so neighbors are checked by hand.
func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func replaceSpans(text string, spans [][]int, mask string) string {
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, span := range spans {
		b.WriteString(text[prev:span[0]])
		b.WriteString(mask)
		prev = span[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

// maskFor is the fixed-shape mask: first rune of the target plus "***".
func maskFor(target string) string {
	r, size := utf8.DecodeRuneInString(target)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return "****"
	}
	return string(r) + "***"
}
