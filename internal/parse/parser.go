package parse

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"zalgiris-matches-service/internal/domain"
)

// Parser turns match windows into MatchRecords. It carries the base URL for
// resolving relative links and an injectable clock for year inference.
type Parser struct {
	baseURL *url.URL
	now     func() time.Time
}

// NewParser constructs a Parser resolving links against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Parser{baseURL: u, now: time.Now}, nil
}

// WithClock overrides the clock used for year inference. Returns the parser
// for chaining.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	if now != nil {
		p.now = now
	}
	return p
}

// Match parses every field from one match window. Fields the window does not
// yield stay nil; the parser never fails.
func (p *Parser) Match(gameID, window string) domain.MatchRecord {
	teams := ParseTeams(window)
	scoreHome, scoreAway := ParseScores(window)

	return domain.MatchRecord{
		GameID:     gameID,
		Start:      ParseStart(window, p.now()),
		League:     ParseLeague(window),
		Home:       teams.Home,
		Away:       teams.Away,
		HomeLogo:   teams.HomeLogo,
		AwayLogo:   teams.AwayLogo,
		TV:         ParseTV(window),
		Arena:      nil, // schedule cards never carry it; detail merges may
		ScoreHome:  scoreHome,
		ScoreAway:  scoreAway,
		InfoURL:    p.infoURL(gameID, window),
		TicketsURL: ParseTickets(window),
		IsLive:     ParseLive(window),
	}
}

// infoURL prefers an explicit anchor for the match (it may carry extra query
// parameters like the media tab) and synthesizes the canonical detail URL
// when the window has none.
func (p *Parser) infoURL(gameID, window string) string {
	quoted := regexp.QuoteMeta(gameID)
	htmlRe := regexp.MustCompile(`(?i)href="([^"]*/schedule-item/` + quoted + `[^"]*)"`)
	if m := htmlRe.FindStringSubmatch(window); m != nil {
		if resolved, ok := p.resolve(unescape(m[1])); ok {
			return resolved
		}
	}
	escRe := regexp.MustCompile(`(?i)\\"href\\":\\"([^"\\]*/schedule-item/` + quoted + `[^"\\]*)\\"`)
	if m := escRe.FindStringSubmatch(window); m != nil {
		if resolved, ok := p.resolve(unescape(m[1])); ok {
			return resolved
		}
	}
	return p.baseURL.JoinPath("schedule-item", gameID).String()
}

func (p *Parser) resolve(href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return p.baseURL.ResolveReference(ref).String(), true
}
