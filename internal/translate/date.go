package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The remote schema stores date-only values as YYYY-MM-DD text.
const canonicalDate = "2006-01-02"

var (
	canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyRe       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// parse layouts tried for everything that is neither canonical nor D/M/YYYY.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
}

// NormalizeDate reduces a date input to the canonical remote form. Canonical
// input passes through unchanged; D/M/YYYY-style input is reordered; anything
// else is parsed and truncated to the date. Unparseable input returns
// ok=false, never an error.
func NormalizeDate(in string) (string, bool) {
	s := strings.TrimSpace(in)
	if s == "" {
		return "", false
	}
	if canonicalRe.MatchString(s) {
		return s, true
	}
	if m := dmyRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return "", false
		}
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalDate), true
		}
	}
	return "", false
}
