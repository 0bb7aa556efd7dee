package view

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"thechannel/catalog"
	"thechannel/prefs"
)

func testState(t *testing.T) *State {
	t.Helper()
	return New(prefs.Open(filepath.Join(t.TempDir(), "prefs.json")))
}

func TestParseLink(t *testing.T) {
	link := ParseLink("?name=Ynet&url=https%3A%2F%2Fwww.ynet.co.il&category=%D7%97%D7%93%D7%A9%D7%95%D7%AA&utm_campaign=x")

	if link.Name != "Ynet" {
		t.Errorf("Name = %q", link.Name)
	}
	if link.URL != "https://www.ynet.co.il" {
		t.Errorf("URL = %q", link.URL)
	}
	if link.Category != "חדשות" {
		t.Errorf("Category = %q", link.Category)
	}
	if link.Extra["utm_campaign"] != "x" {
		t.Errorf("Extra = %v, expected the unknown param preserved", link.Extra)
	}
}

func TestLinkEncodeRoundtrip(t *testing.T) {
	orig := Link{
		Name:     "Ynet",
		URL:      "https://www.ynet.co.il",
		Category: "חדשות",
		Extra:    map[string]string{"ref": "friend"},
	}
	got := ParseLink(orig.Encode())

	if got.Name != orig.Name || got.URL != orig.URL || got.Category != orig.Category {
		t.Errorf("roundtrip lost fields: %+v", got)
	}
	if got.Extra["ref"] != "friend" {
		t.Errorf("roundtrip lost extras: %v", got.Extra)
	}
	if got.View != "" {
		t.Errorf("View should stay empty for a site link, got %q", got.View)
	}
}

func TestApplyLinkResolvesCatalogSite(t *testing.T) {
	s := testState(t)

	resolve := func(u string) (catalog.Site, string, bool) {
		if u == "https://www.ynet.co.il" {
			return catalog.Site{Name: "Ynet", URL: u, GoogleLoginSupported: true}, "חדשות", true
		}
		return catalog.Site{}, "", false
	}

	if !s.ApplyLink(ParseLink("?url=https://www.ynet.co.il"), resolve) {
		t.Fatal("ApplyLink should succeed")
	}
	sel := s.Selected()
	if sel == nil || sel.Name != "Ynet" || !sel.GoogleLoginSupported {
		t.Errorf("selection should come from the catalog: %+v", sel)
	}
}

func TestApplyLinkAdHocSite(t *testing.T) {
	s := testState(t)

	if !s.ApplyLink(ParseLink("?url=https://unknown.example"), func(string) (catalog.Site, string, bool) {
		return catalog.Site{}, "", false
	}) {
		t.Fatal("unknown URLs should still open")
	}
	sel := s.Selected()
	if sel == nil || sel.URL != "https://unknown.example" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if sel.Name != "https://unknown.example" {
		t.Errorf("nameless site should fall back to its URL, got %q", sel.Name)
	}
}

func TestApplyLinkCustomView(t *testing.T) {
	s := testState(t)

	if !s.ApplyLink(ParseLink("?view=help&section=login"), nil) {
		t.Fatal("ApplyLink should succeed for view links")
	}
	if s.Selected() != nil {
		t.Error("custom view must clear the site selection")
	}
	if s.CustomSource() != "help" || s.Section() != "login" {
		t.Errorf("source=%q section=%q", s.CustomSource(), s.Section())
	}

	if s.ApplyLink(ParseLink("?view=custom"), nil) {
		t.Error("view=custom without a source has nothing to show")
	}
}

func TestCurrentLinkMutualExclusion(t *testing.T) {
	s := testState(t)

	s.SelectSite(catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il"}, "חדשות")
	link := s.CurrentLink()
	if link.URL != "https://www.ynet.co.il" || link.View != "" {
		t.Errorf("site link should carry no view: %+v", link)
	}

	s.ShowCustom("advertise", "")
	link = s.CurrentLink()
	if link.URL != "" || link.View != "advertise" {
		t.Errorf("view link should carry no site: %+v", link)
	}

	s.ShowCustom("promo2026", "")
	link = s.CurrentLink()
	if link.View != "custom" || link.Source != "promo2026" {
		t.Errorf("ad hoc source should encode as view=custom: %+v", link)
	}
}

func TestCurrentLinkKeepsExtras(t *testing.T) {
	s := testState(t)
	s.ApplyLink(ParseLink("?url=https://www.ynet.co.il&ref=friend"), nil)

	s.SelectSite(catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}, "חדשות")
	link := s.CurrentLink()
	if link.Extra["ref"] != "friend" {
		t.Errorf("extras should survive navigation: %v", link.Extra)
	}
}

func TestLastViewedPersists(t *testing.T) {
	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	s := New(p)
	s.SelectSite(catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il"}, "חדשות")

	// A fresh state over the same prefs sees the last viewed URL
	s2 := New(p)
	if s2.LastViewedURL() != "https://www.ynet.co.il" {
		t.Errorf("LastViewedURL = %q", s2.LastViewedURL())
	}
}

func TestAddUTM(t *testing.T) {
	got := AddUTM("https://www.ynet.co.il/home")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("utm_source") != "haharuts" || u.Query().Get("utm_medium") != "iframe" {
		t.Errorf("missing campaign params: %s", got)
	}

	// Existing params win
	got = AddUTM("https://example.com/?utm_source=other")
	if !strings.Contains(got, "utm_source=other") {
		t.Errorf("existing utm_source overwritten: %s", got)
	}
	if !strings.Contains(got, "utm_medium=iframe") {
		t.Errorf("missing utm_medium should still be added: %s", got)
	}
}

func TestTitle(t *testing.T) {
	s := testState(t)

	if s.Title() != DefaultTitle {
		t.Errorf("empty selection title = %q", s.Title())
	}

	s.SelectSite(catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il"}, "חדשות")
	if !strings.HasPrefix(s.Title(), "Ynet | ") {
		t.Errorf("site title = %q", s.Title())
	}

	s.ShowCustom("help", "login")
	if !strings.Contains(s.Title(), "התחברות לערוצים") {
		t.Errorf("help section title = %q", s.Title())
	}

	s.ShowCustom("advertise", "")
	if !strings.HasPrefix(s.Title(), "פרסום | ") {
		t.Errorf("advertise title = %q", s.Title())
	}
}
