package parse

import (
	"strings"
	"testing"
)

const (
	idOne = "11111111-2222-3333-4444-555555555555"
	idTwo = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

func card(id, team string) string {
	padding := strings.Repeat("<div class=\"pad\"></div>", 40)
	return `<article><a href="/schedule-item/` + id + `?tab=media">` +
		`<img src="https://cdn.example.com/` + team + `.png" alt="` + team + `" />` +
		padding + `</a></article>`
}

func TestWindowPrefersEnclosingCard(t *testing.T) {
	page := "<header>schedule</header>" + card(idOne, "TeamAlpha") + card(idTwo, "TeamBeta") + "<footer></footer>"

	w := Window(page, idOne)
	if !strings.Contains(w, "TeamAlpha") {
		t.Fatal("expected own card content in window")
	}
	if strings.Contains(w, "TeamBeta") {
		t.Fatal("adjacent match bled into the window")
	}

	w2 := Window(page, idTwo)
	if !strings.Contains(w2, "TeamBeta") || strings.Contains(w2, "TeamAlpha") {
		t.Fatal("expected the second card isolated")
	}
}

func TestWindowFallsBackToFixedSizeWithoutCards(t *testing.T) {
	filler := strings.Repeat("x", 10000)
	page := filler + "/schedule-item/" + idOne + filler

	w := Window(page, idOne)
	if len(w) > windowSize+len(idOne)+32 {
		t.Fatalf("expected a bounded window, got %d chars", len(w))
	}
	if !strings.Contains(w, idOne) {
		t.Fatal("expected the anchor inside the window")
	}
}

func TestWindowClipsToDocumentBounds(t *testing.T) {
	page := "/schedule-item/" + idOne + " tiny page"
	w := Window(page, idOne)
	if w != page {
		t.Fatalf("expected whole document for a small page, got %d chars", len(w))
	}
}

func TestWindowUnknownIDStartsAtDocumentHead(t *testing.T) {
	page := strings.Repeat("y", 9000)
	w := Window(page, idOne)
	if !strings.HasPrefix(page, w[:10]) {
		t.Fatal("expected window anchored at document head")
	}
}

func TestAnchorIndexPreference(t *testing.T) {
	page := `bare ` + idOne + ` then <a href="/schedule-item/` + idOne + `">plain</a>` +
		` then <a href="/schedule-item/` + idOne + `?tab=media">tab</a>`

	idx := anchorIndex(page, idOne)
	tabIdx := strings.Index(page, "/schedule-item/"+idOne+"?tab=")
	if idx != tabIdx {
		t.Fatalf("expected the tab anchor preferred, got %d want %d", idx, tabIdx)
	}
}

func TestAnchorIndexCaseInsensitive(t *testing.T) {
	page := `<a href="/SCHEDULE-ITEM/` + strings.ToUpper(idOne) + `">x</a>`
	if anchorIndex(page, idOne) < 0 {
		t.Fatal("expected case-insensitive anchor match")
	}
}

func TestDetailWindowClips(t *testing.T) {
	long := strings.Repeat("z", 20000)
	if got := DetailWindow(long); len(got) != 12000 {
		t.Fatalf("expected 12000 chars, got %d", len(got))
	}
	if got := DetailWindow("short"); got != "short" {
		t.Fatalf("expected short page untouched, got %q", got)
	}
}
