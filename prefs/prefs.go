// Package prefs provides persistent key/value preference storage.
// Writes are best-effort: a failed save is logged and swallowed so callers
// never have to handle storage errors (quota, read-only disk, etc).
package prefs

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. The settings keys span three generations: userSites is the
// oldest flat list, userChannelCategories the category list, and
// userChannelSettings the current full snapshot. MigrateSettings promotes
// whatever generation is found on disk.
const (
	KeySettings            = "userChannelSettings"
	KeyLegacyCategories    = "userChannelCategories"
	KeyLegacySites         = "userSites"
	KeyRemovedDefaultSites = "removedDefaultSites"
	KeySidebarCollapsed    = "sidebarCollapsed"
	KeyLastViewedSiteURL   = "lastViewedSiteUrl"
	KeyCollapsedCategories = "collapsedCategories"
	KeyViewedTutorials     = "viewedChannelTutorials"

	KeyNeverShowLoginTutorial    = "neverShowLoginTutorial"
	KeyNeverShowWelcome          = "neverShowWelcomeDialog"
	KeyNeverShowGrantPermission  = "neverShowGrantPermissionDialog"
	KeyNeverShowInstallExtension = "neverShowInstallExtensionDialog"
	KeyNeverShowCookiesBlocked   = "neverShowCookiesBlockedDialog"
)

// Store is a JSON-file-backed key/value store.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// Open reads the preference file at path, starting empty if it is absent
// or unparseable.
func Open(path string) *Store {
	s := &Store{path: path, values: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s
	}
	if err != nil {
		log.Printf("prefs: reading %s: %v", path, err)
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		log.Printf("prefs: parsing %s, starting fresh: %v", path, err)
		s.values = make(map[string]json.RawMessage)
	}
	return s
}

// Save serializes value under key and writes the store to disk.
// Errors are logged, never returned.
func (s *Store) Save(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("prefs: marshaling %q: %v", key, err)
		return
	}
	s.values[key] = raw
	s.flush()
}

// Load unmarshals the stored value for key into out. Returns false on
// absence or parse failure.
func (s *Store) Load(key string, out any) bool {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("prefs: parsing %q, ignoring: %v", key, err)
		return false
	}
	return true
}

// Delete removes a key and persists the change.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.flush()
}

// Has reports whether a key is present.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// flush writes the whole store. Callers hold s.mu.
func (s *Store) flush() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		log.Printf("prefs: creating %s: %v", filepath.Dir(s.path), err)
		return
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		log.Printf("prefs: marshaling store: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Printf("prefs: writing %s: %v", s.path, err)
	}
}

// Bool loads a boolean flag, false when unset.
func (s *Store) Bool(key string) bool {
	var v bool
	s.Load(key, &v)
	return v
}

// SetBool stores a boolean flag.
func (s *Store) SetBool(key string, v bool) {
	s.Save(key, v)
}

// HasViewedTutorial reports whether the login tutorial was already shown
// for this site URL.
func (s *Store) HasViewedTutorial(url string) bool {
	var viewed []string
	s.Load(KeyViewedTutorials, &viewed)
	for _, u := range viewed {
		if u == url {
			return true
		}
	}
	return false
}

// MarkTutorialViewed records a site URL as having shown the login tutorial.
func (s *Store) MarkTutorialViewed(url string) {
	var viewed []string
	s.Load(KeyViewedTutorials, &viewed)
	for _, u := range viewed {
		if u == url {
			return
		}
	}
	s.Save(KeyViewedTutorials, append(viewed, url))
}
