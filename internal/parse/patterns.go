package parse

import (
	"regexp"
	"strings"
)

// The schedule page ships two markup dialects for the same facts: plain HTML
// and escaped-JSON-in-HTML payloads. Every field is extracted by an ordered
// list of dialect strategies; earlier strategies always win, later ones only
// cover the alternate dialect.
type strategy struct {
	dialect string
	re      *regexp.Regexp
}

const (
	dialectHTML    = "html"
	dialectEscJSON = "escaped-json"
)

var (
	// Match identifiers are UUIDs inside /schedule-item/ links.
	gameIDRe = regexp.MustCompile(`(?i)/schedule-item/([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)

	// e.g. "PN, 01-30, 21:30" (Lithuanian weekday abbreviations).
	startRe = regexp.MustCompile(`([A-ZŠŽĮŪ]{1,3})\s*,\s*(\d{2})-(\d{2})\s*,\s*(\d{2}):(\d{2})`)
	// The weekday sometimes arrives mangled by a stray nbsp; bare fallback.
	startBareRe = regexp.MustCompile(`\b(\d{2})-(\d{2})\s*,\s*(\d{2}):(\d{2})\b`)

	ticketsRe = regexp.MustCompile(`(?i)https?://[a-z0-9.-]*koobin\.com[^\s"<>\\]+`)

	imgSrcAltRe = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"[^>]+alt="([^"]+)"`)
	imgAltSrcRe = regexp.MustCompile(`(?i)<img[^>]+alt="([^"]+)"[^>]+src="([^"]+)"`)
	imgEscRe    = regexp.MustCompile(`(?i)\\"src\\":\\"([^"\\]+)\\"[^}]+?\\"alt\\":\\"([^"\\]+)\\"`)

	altStrategies = []strategy{
		{dialectHTML, regexp.MustCompile(`alt="([^"]{2,50})"`)},
		{dialectEscJSON, regexp.MustCompile(`\\"alt\\":\\"([^"\\]{2,50})\\"`)},
	}

	scoreStrategies = []strategy{
		{dialectHTML, regexp.MustCompile(`(?i)tabular-nums[^>]*>\s*([^<]{1,3})\s*</p>`)},
		{dialectEscJSON, regexp.MustCompile(`(?i)tabular-nums\\",\\"children\\":\\"([^"\\]{1,3})`)},
	}

	tvStrategies = []strategy{
		{dialectHTML, regexp.MustCompile(`(?i)Broadcasts\s*</p>\s*<p[^>]*>([^<]{1,60})</p>`)},
		{dialectEscJSON, regexp.MustCompile(`(?i)Broadcasts\\",\\"children\\":\\"([^"\\]{1,60})`)},
	}

	leagueFallbackRe = regexp.MustCompile(`text-white/60 text-2xs truncate[^>]*>([^<]{3,60})</p>`)
)

// firstCapture returns the first strategy's first capture group, trimmed.
func firstCapture(strategies []strategy, window string) (string, bool) {
	for _, s := range strategies {
		if m := s.re.FindStringSubmatch(window); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// allCaptures collects the first capture group of every match across all
// strategies, in strategy then document order, trimmed.
func allCaptures(strategies []strategy, window string) []string {
	var out []string
	for _, s := range strategies {
		for _, m := range s.re.FindAllStringSubmatch(window, -1) {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#x2F;", "/",
	"&#47;", "/",
)

// unescape reverses the handful of HTML entities the page uses in attributes.
func unescape(s string) string {
	return entityReplacer.Replace(s)
}
