package parse

import (
	"strings"

	"zalgiris-matches-service/internal/domain"
)

// The home club's own generic badge appears in every match card and must not
// be mistaken for a team name.
var badgeSentinels = map[string]struct{}{
	"žalgiris team": {},
	"zalgiris team": {},
}

// Teams holds the outcome of one teams/logos scan.
type Teams struct {
	Home     *string
	Away     *string
	HomeLogo *string
	AwayLogo *string
}

// ParseTeams scans image alternate-text attributes in document order across
// both dialects. The first distinct non-sentinel name is the home side, the
// first subsequent differing name the away side; logos come from a name→src
// map built on the same scan, first occurrence winning per name.
func ParseTeams(window string) Teams {
	logos := make(map[string]string)
	record := func(alt, src string) {
		alt, src = strings.TrimSpace(alt), strings.TrimSpace(src)
		if alt == "" || src == "" {
			return
		}
		if _, ok := logos[alt]; !ok {
			logos[alt] = src
		}
	}
	for _, m := range imgSrcAltRe.FindAllStringSubmatch(window, -1) {
		record(m[2], m[1])
	}
	for _, m := range imgAltSrcRe.FindAllStringSubmatch(window, -1) {
		record(m[1], m[2])
	}
	for _, m := range imgEscRe.FindAllStringSubmatch(window, -1) {
		record(m[2], m[1])
	}

	names := collectNames(window, altStrategies[0], nil)
	if len(names) < 2 {
		names = collectNames(window, altStrategies[1], names)
	}

	var t Teams
	if len(names) == 0 {
		return t
	}
	home := names[0]
	t.Home = domain.String(unescape(home))
	for _, n := range names[1:] {
		if n != home {
			t.Away = domain.String(unescape(n))
			if logo, ok := logos[n]; ok {
				t.AwayLogo = domain.String(unescape(logo))
			}
			break
		}
	}
	if logo, ok := logos[home]; ok {
		t.HomeLogo = domain.String(unescape(logo))
	}
	return t
}

// collectNames appends distinct non-sentinel alt names for one dialect, in
// document order, up to four in total.
func collectNames(window string, s strategy, names []string) []string {
	for _, m := range s.re.FindAllStringSubmatch(window, -1) {
		if len(names) >= 4 {
			break
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, sentinel := badgeSentinels[strings.ToLower(name)]; sentinel {
			continue
		}
		if containsName(names, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
