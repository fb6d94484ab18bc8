package parse

import (
	"strings"
	"time"

	"zalgiris-matches-service/internal/domain"
	"zalgiris-matches-service/internal/timeutil"
)

// ParseStart extracts the match start token and resolves it to an absolute
// instant anchored on now. Nil when neither dialect yields a valid token.
func ParseStart(window string, now time.Time) *time.Time {
	if m := startRe.FindStringSubmatch(window); m != nil {
		if t, ok := guessFromParts(now, m[2], m[3], m[4], m[5]); ok {
			return &t
		}
	}
	if m := startBareRe.FindStringSubmatch(window); m != nil {
		if t, ok := guessFromParts(now, m[1], m[2], m[3], m[4]); ok {
			return &t
		}
	}
	return nil
}

func guessFromParts(now time.Time, month, day, hour, minute string) (time.Time, bool) {
	mo, d, h, mi := atoi(month), atoi(day), atoi(hour), atoi(minute)
	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 {
		return time.Time{}, false
	}
	return timeutil.GuessStart(now, mo, d, h, mi), true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// ParseScores extracts both scores from the tabular-nums marker, or nil/nil.
// A single readable number is not a score; partial results are discarded.
func ParseScores(window string) (*int, *int) {
	raw := allCaptures(scoreStrategies, window)

	// Order-preserving dedupe: the page repeats the same token per dialect.
	var cleaned []string
	seen := make(map[string]struct{})
	for _, r := range raw {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		cleaned = append(cleaned, r)
	}

	var nums []int
	for _, r := range cleaned {
		r = strings.TrimSpace(strings.ReplaceAll(r, "\u00a0", " "))
		if n := atoi(r); n >= 0 && r != "" {
			nums = append(nums, n)
		}
		if len(nums) == 2 {
			break
		}
	}
	if len(nums) < 2 {
		return nil, nil
	}
	return domain.Int(nums[0]), domain.Int(nums[1])
}

// leagueCatalogue maps display variants (including diacritic and encoding
// drift seen in the wild) to one canonical league name.
var leagueCatalogue = []struct {
	canonical string
	variants  []string
}{
	{"EuroLeague", []string{"euroleague", "eurolyga"}},
	{"LKL", []string{"lkl", "lietuvos krepšinio lyga", "lietuvos krepsinio lyga"}},
	{"King Mindaugas Cup", []string{"king mindaugas cup", "karaliaus mindaugo taurė", "karaliaus mindaugo taure", "kmt"}},
}

// ParseLeague matches the known-league catalogue case-insensitively, then
// falls back to the small-header structural pattern. The escaped-JSON header
// fallback is too noisy to trust, so that dialect only participates through
// the catalogue.
func ParseLeague(window string) *string {
	lower := strings.ToLower(window)
	for _, entry := range leagueCatalogue {
		for _, v := range entry.variants {
			if strings.Contains(lower, v) {
				return domain.String(entry.canonical)
			}
		}
	}
	if m := leagueFallbackRe.FindStringSubmatch(window); m != nil {
		return domain.String(unescape(strings.TrimSpace(m[1])))
	}
	return nil
}

// ParseTV extracts the broadcaster listed under the "Broadcasts" heading.
func ParseTV(window string) *string {
	if tv, ok := firstCapture(tvStrategies, window); ok && tv != "" {
		return domain.String(unescape(tv))
	}
	return nil
}

// ParseTickets returns the first third-party ticketing link in the window.
func ParseTickets(window string) *string {
	if m := ticketsRe.FindString(window); m != "" {
		return domain.String(unescape(m))
	}
	return nil
}

var liveMarkers = []string{"live", "gyvai", "tiesiogiai"}

// ParseLive reports whether any live/broadcast indicator word appears in the
// window. Best-effort: promotional text can trip it, callers must treat the
// flag as advisory.
func ParseLive(window string) bool {
	lower := strings.ToLower(window)
	for _, marker := range liveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
