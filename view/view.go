// Package view tracks what the content pane is showing: the selected site
// or one custom content source, never both. Every selection is reflected
// into a shareable deep link and remembered as the last viewed site.
package view

import (
	"sync"

	"thechannel/catalog"
	"thechannel/prefs"
)

// State is the current selection. Zero value is an empty selection.
type State struct {
	mu    sync.RWMutex
	prefs *prefs.Store

	selected *catalog.Site
	category string
	source   string // custom content folder, "" when a site is shown
	section  string // help sub-page
	extra    map[string]string

	subs     []func()
	onSelect func(catalog.Site)
}

// New creates an empty selection state over the preference store.
func New(p *prefs.Store) *State {
	return &State{prefs: p, extra: make(map[string]string)}
}

// OnSelect registers the hook run after each successful site selection.
// The dialog decision tree hangs off this.
func (s *State) OnSelect(fn func(catalog.Site)) {
	s.mu.Lock()
	s.onSelect = fn
	s.mu.Unlock()
}

// Subscribe registers a callback invoked after every selection change.
func (s *State) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Selected returns the active site, nil when a custom view (or nothing)
// is showing.
func (s *State) Selected() *catalog.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	site := *s.selected
	return &site
}

// CustomSource returns the active custom content folder, "" when a site
// is showing.
func (s *State) CustomSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Section returns the help sub-page, when the help view is active.
func (s *State) Section() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.section
}

// SelectSite makes a site the active view, clearing any custom content,
// persisting it as last viewed and running the selection hook.
func (s *State) SelectSite(site catalog.Site, category string) {
	s.mu.Lock()
	selected := site
	s.selected = &selected
	s.category = category
	s.source = ""
	s.section = ""
	hook := s.onSelect
	s.mu.Unlock()

	s.prefs.Save(prefs.KeyLastViewedSiteURL, site.URL)
	s.notify()
	if hook != nil {
		hook(site)
	}
}

// ShowCustom makes a custom content source the active view, clearing the
// site selection. Section applies to the help source only.
func (s *State) ShowCustom(source, section string) {
	s.mu.Lock()
	s.selected = nil
	s.category = ""
	s.source = source
	s.section = section
	s.mu.Unlock()
	s.notify()
}

// Clear empties the selection entirely.
func (s *State) Clear() {
	s.mu.Lock()
	s.selected = nil
	s.category = ""
	s.source = ""
	s.section = ""
	s.mu.Unlock()
	s.notify()
}

// LastViewedURL returns the persisted last-viewed site URL.
func (s *State) LastViewedURL() string {
	var url string
	s.prefs.Load(prefs.KeyLastViewedSiteURL, &url)
	return url
}

func (s *State) notify() {
	s.mu.RLock()
	subs := append([]func(){}, s.subs...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
