package parse

import (
	"strings"

	"zalgiris-matches-service/internal/domain"
)

// GameIDs returns the ordered distinct match identifiers found on the page.
func GameIDs(html string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, m := range gameIDRe.FindAllStringSubmatch(html, -1) {
		id := strings.ToLower(m[1])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Diagnostics summarizes parse quality for one schedule page so a layout
// change upstream is visible from the snapshot instead of silently yielding
// zero matches.
func Diagnostics(html string, ids []string) domain.ParseDebug {
	head := html
	if len(head) > 160 {
		head = head[:160]
	}
	return domain.ParseDebug{
		ParseMode:    "href",
		LinksFound:   len(gameIDRe.FindAllString(html, -1)),
		MatchesFound: len(ids),
		HasSchedule:  strings.Contains(html, "/schedule-item"),
		HasUUID:      len(ids) > 0,
		HTMLHead:     strings.ReplaceAll(head, "\n", " "),
	}
}
