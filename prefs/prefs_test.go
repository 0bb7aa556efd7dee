package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s := Open(path)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	s.Save("thing", payload{Name: "ערוץ", Count: 3})

	// Re-open from disk to prove persistence
	s2 := Open(path)
	var got payload
	if !s2.Load("thing", &got) {
		t.Fatal("Load returned false for saved key")
	}
	if got.Name != "ערוץ" || got.Count != 3 {
		t.Errorf("got %+v, expected {ערוץ 3}", got)
	}
}

func TestLoadMissingKey(t *testing.T) {
	s := tempStore(t)
	var out string
	if s.Load("nope", &out) {
		t.Error("Load should return false for missing key")
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	if s.Has("anything") {
		t.Error("corrupt store should start empty")
	}

	// And it should still accept writes
	s.Save("key", "value")
	var got string
	if !s.Load("key", &got) || got != "value" {
		t.Errorf("store unusable after corrupt open: %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	s.Save("key", 1)
	if !s.Has("key") {
		t.Fatal("key should exist after Save")
	}
	s.Delete("key")
	if s.Has("key") {
		t.Error("key should be gone after Delete")
	}
}

func TestBoolFlags(t *testing.T) {
	s := tempStore(t)
	if s.Bool(KeyNeverShowWelcome) {
		t.Error("unset flag should be false")
	}
	s.SetBool(KeyNeverShowWelcome, true)
	if !s.Bool(KeyNeverShowWelcome) {
		t.Error("flag should be true after SetBool")
	}
}

func TestViewedTutorials(t *testing.T) {
	s := tempStore(t)
	url := "https://www.ynet.co.il"

	if s.HasViewedTutorial(url) {
		t.Error("tutorial should not be viewed initially")
	}
	s.MarkTutorialViewed(url)
	if !s.HasViewedTutorial(url) {
		t.Error("tutorial should be viewed after marking")
	}

	// Marking twice must not duplicate the entry
	s.MarkTutorialViewed(url)
	var viewed []string
	s.Load(KeyViewedTutorials, &viewed)
	if len(viewed) != 1 {
		t.Errorf("expected 1 viewed entry, got %d", len(viewed))
	}
}
