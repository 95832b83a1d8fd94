package translate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes and strips combining marks. NFD does not touch
// the Vietnamese đ/Đ, so those are replaced up front.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// Slugify turns a display string into the wire token used for enum values
// that have no explicit mapping entry: lowercase ASCII, diacritics folded,
// non-alphanumeric runs collapsed to one underscore, edges trimmed. The same
// input always yields the same token.
func Slugify(display string) string {
	s := dReplacer.Replace(display)
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

// TitleCase renders a wire token back into a display form: separators become
// spaces and each word is capitalised. Lost diacritics are not restored;
// Slugify(TitleCase(token)) == token keeps round-trips stable.
func TitleCase(token string) string {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
