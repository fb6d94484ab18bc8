package parse

import "testing"

func TestParseTeamsHTMLDialect(t *testing.T) {
	window := `
<img src="https://cdn.example.com/zal.png" alt="Žalgiris Kaunas" />
<img src="https://cdn.example.com/rm.png" alt="Real Madrid" />`

	got := ParseTeams(window)
	if got.Home == nil || *got.Home != "Žalgiris Kaunas" {
		t.Fatalf("expected home Žalgiris Kaunas, got %v", got.Home)
	}
	if got.Away == nil || *got.Away != "Real Madrid" {
		t.Fatalf("expected away Real Madrid, got %v", got.Away)
	}
	if got.HomeLogo == nil || *got.HomeLogo != "https://cdn.example.com/zal.png" {
		t.Fatalf("expected home logo, got %v", got.HomeLogo)
	}
	if got.AwayLogo == nil || *got.AwayLogo != "https://cdn.example.com/rm.png" {
		t.Fatalf("expected away logo, got %v", got.AwayLogo)
	}
}

func TestParseTeamsSkipsBadgeSentinel(t *testing.T) {
	window := `
<img src="https://cdn.example.com/badge.png" alt="Žalgiris team" />
<img src="https://cdn.example.com/zal.png" alt="Žalgiris Kaunas" />
<img src="https://cdn.example.com/oly.png" alt="Olympiacos" />`

	got := ParseTeams(window)
	if got.Home == nil || *got.Home != "Žalgiris Kaunas" {
		t.Fatalf("expected the sentinel skipped, got home %v", got.Home)
	}
	if got.Away == nil || *got.Away != "Olympiacos" {
		t.Fatalf("expected away Olympiacos, got %v", got.Away)
	}
}

func TestParseTeamsEscapedDialect(t *testing.T) {
	window := `{\"src\":\"https://cdn.example.com/zal.png\",\"alt\":\"Žalgiris Kaunas\"},` +
		`{\"src\":\"https://cdn.example.com/pao.png\",\"alt\":\"Panathinaikos\"}`

	got := ParseTeams(window)
	if got.Home == nil || *got.Home != "Žalgiris Kaunas" {
		t.Fatalf("expected home from escaped dialect, got %v", got.Home)
	}
	if got.Away == nil || *got.Away != "Panathinaikos" {
		t.Fatalf("expected away from escaped dialect, got %v", got.Away)
	}
	if got.HomeLogo == nil || *got.HomeLogo != "https://cdn.example.com/zal.png" {
		t.Fatalf("expected escaped home logo, got %v", got.HomeLogo)
	}
}

func TestParseTeamsAttributeOrderDoesNotMatter(t *testing.T) {
	window := `<img alt="Žalgiris Kaunas" src="https://cdn.example.com/zal.png" />
<img alt="Fenerbahce" src="https://cdn.example.com/fb.png" />`

	got := ParseTeams(window)
	if got.HomeLogo == nil || *got.HomeLogo != "https://cdn.example.com/zal.png" {
		t.Fatalf("expected alt-first attribute form handled, got %v", got.HomeLogo)
	}
	if got.Away == nil || *got.Away != "Fenerbahce" {
		t.Fatalf("expected away Fenerbahce, got %v", got.Away)
	}
}

func TestParseTeamsRepeatedHomeNameIgnored(t *testing.T) {
	window := `<img src="https://a.png" alt="Žalgiris Kaunas" />
<img src="https://b.png" alt="Žalgiris Kaunas" />`

	got := ParseTeams(window)
	if got.Away != nil {
		t.Fatalf("expected no away side when only one distinct name, got %v", *got.Away)
	}
	// First occurrence wins for the logo map.
	if got.HomeLogo == nil || *got.HomeLogo != "https://a.png" {
		t.Fatalf("expected first logo kept, got %v", got.HomeLogo)
	}
}

func TestParseTeamsEmptyWindow(t *testing.T) {
	got := ParseTeams(`<div>nothing</div>`)
	if got.Home != nil || got.Away != nil {
		t.Fatal("expected no teams")
	}
}
