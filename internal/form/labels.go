package form

import "strings"

// DefaultLabeler turns a field name into a display label: underscores,
// dashes, and camelCase boundaries become word breaks, and each word is
// title-cased. "exposure_time" becomes "Exposure Time".
func DefaultLabeler(name string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := strings.ToLower(current.String())
		words = append(words, strings.ToUpper(word[:1])+word[1:])
		current.Reset()
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case i > 0 && wordBoundary(runes[i-1], r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return strings.Join(words, " ")
}

// wordBoundary reports a camelCase or letter/digit transition.
func wordBoundary(prev, r rune) bool {
	lower := func(c rune) bool { return c >= 'a' && c <= 'z' }
	upper := func(c rune) bool { return c >= 'A' && c <= 'Z' }
	digit := func(c rune) bool { return c >= '0' && c <= '9' }
	letter := func(c rune) bool { return lower(c) || upper(c) }

	return (lower(prev) && upper(r)) || (letter(prev) && digit(r)) || (digit(prev) && letter(r))
}
