package parse

import (
	"regexp"
	"strings"
)

const (
	// Fixed-size window centered on the match anchor.
	windowSize = 6000

	// Sanity range for the card-boundary refinement. Outside it the span is
	// assumed to be a parsing mirage and the fixed window is used instead.
	cardSpanMin = 800
	cardSpanMax = 50000

	cardOpen  = "<article"
	cardClose = "</article>"
)

// Window isolates the substring of the page describing one match. The anchor
// is the most structurally reliable occurrence of the identifier: a link with
// the media-tab query parameter, then any schedule-item link, then a quoted
// occurrence, then a bare substring. When the enclosing card boundaries can
// be found and yield a sane span, the card is preferred over the fixed window
// so adjacent matches do not bleed into each other.
func Window(html, gameID string) string {
	idx := anchorIndex(html, gameID)
	if idx < 0 {
		idx = 0
	}

	if open := strings.LastIndex(html[:idx], cardOpen); open >= 0 {
		if close := strings.Index(html[idx:], cardClose); close >= 0 {
			end := idx + close + len(cardClose)
			if span := end - open; span >= cardSpanMin && span <= cardSpanMax {
				return html[open:end]
			}
		}
	}

	start := idx - windowSize/2
	if start < 0 {
		start = 0
	}
	end := idx + windowSize/2
	if end > len(html) {
		end = len(html)
	}
	return html[start:end]
}

func anchorIndex(html, gameID string) int {
	candidates := []string{
		"/schedule-item/" + gameID + "?tab=",
		"/schedule-item/" + gameID,
		`"` + gameID + `"`,
		gameID,
	}
	for _, c := range candidates {
		if idx := indexFold(html, c); idx >= 0 {
			return idx
		}
	}
	return -1
}

// indexFold finds needle case-insensitively (identifiers are hex but the page
// is not consistent about casing them).
func indexFold(haystack, needle string) int {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(needle))
	if err != nil {
		return strings.Index(haystack, needle)
	}
	if loc := re.FindStringIndex(haystack); loc != nil {
		return loc[0]
	}
	return -1
}

// DetailWindow clips a detail page to the region worth parsing; everything
// interesting sits at the top of the document.
func DetailWindow(html string) string {
	const detailSize = 12000
	if len(html) > detailSize {
		return html[:detailSize]
	}
	return html
}
