package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted input formats, tried in order. Output is
// always canonical ISO.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// normalizeDate parses a date string and returns it in ISO form.
// Text that parses in no accepted layout is rejected rather than
// passed through raw.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseAmount parses a monetary amount after stripping currency symbols,
// thousands separators, and surrounding whitespace. Negative or
// unparseable values are rejected.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseWhitespace folds runs of whitespace into single spaces;
// PDF-to-text conversion leaves irregular spacing and stray newlines
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

var partySeparatorRe = regexp.MustCompile(`[,;]|\s+and\s+`)

// splitParties splits a third-party line into individual names, dropping
// None/N/A placeholders. An empty result is a valid "no parties".
func splitParties(line string) []string {
	parties := []string{}
	for _, part := range partySeparatorRe.Split(line, -1) {
		s := strings.TrimSpace(part)
		if s == "" || isNonePlaceholder(s) {
			continue
		}
		parties = append(parties, s)
	}
	return parties
}

// isNonePlaceholder reports whether a list entry is a "no value" marker
func isNonePlaceholder(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "n/a", "na", "-":
		return true
	}
	return false
}
