package catalog

import "testing"

func testAvailable() []AvailableSite {
	return []AvailableSite{
		{Site: Site{Name: "הארץ", URL: "https://www.haaretz.co.il"}, Category: "חדשות"},
		{Site: Site{Name: "גיקטיים", URL: "https://www.geektime.co.il"}},
	}
}

func TestFilterCategories(t *testing.T) {
	s := New(testPrefs(t))
	s.Initialize(defaultTestCategories(), nil, nil, Loaded)

	all := s.FilterCategories("")
	if len(all) != 2 {
		t.Fatalf("empty term should return everything, got %d categories", len(all))
	}

	filtered := s.FilterCategories("ynet")
	if len(filtered) != 1 {
		t.Fatalf("expected 1 category, got %d", len(filtered))
	}
	if len(filtered[0].Sites) != 1 || filtered[0].Sites[0].Name != "Ynet" {
		t.Errorf("unexpected match: %+v", filtered[0].Sites)
	}

	if got := s.FilterCategories("לא קיים בכלל"); len(got) != 0 {
		t.Errorf("no-match term should drop all categories, got %d", len(got))
	}
}

func TestAvailableMatches(t *testing.T) {
	s := New(testPrefs(t))
	s.Initialize(defaultTestCategories(), testAvailable(), nil, Loaded)

	if got := s.AvailableMatches(""); got != nil {
		t.Error("empty term should return no suggestions")
	}

	got := s.AvailableMatches("הארץ")
	if len(got) != 1 || got[0].Name != "הארץ" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}

	// A suggestion already in the catalog disappears from matches
	s.AddAvailable(got[0])
	if got := s.AvailableMatches("הארץ"); len(got) != 0 {
		t.Error("added suggestion should no longer be offered")
	}
}

func TestAddAvailableDefaultCategory(t *testing.T) {
	s := New(testPrefs(t))
	s.Initialize(defaultTestCategories(), testAvailable(), nil, Loaded)

	// גיקטיים carries no category of its own
	matches := s.AvailableMatches("גיק")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if !s.AddAvailable(matches[0]) {
		t.Fatal("AddAvailable failed")
	}
	if _, cat, _ := s.FindSite("https://www.geektime.co.il"); cat != DefaultCategoryName {
		t.Errorf("uncategorized suggestion landed in %q, expected %q", cat, DefaultCategoryName)
	}
}
