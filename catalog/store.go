package catalog

import (
	"sort"
	"sync"
	"time"

	"thechannel/prefs"
)

// DuplicateSiteMessage is surfaced as a toast when adding an existing URL.
const DuplicateSiteMessage = "הערוץ כבר קיים ברשימה."

// SyncFunc pushes a settings snapshot to the extension agent.
type SyncFunc func(Settings)

// Store is the authoritative in-memory catalog. All reads and mutations are
// safe for concurrent use; subscribers are notified after every change.
type Store struct {
	mu    sync.RWMutex
	prefs *prefs.Store

	categories []Category
	available  []AvailableSite
	defaults   map[string]Site // bundled default sites by URL
	removed    map[string]bool // default URLs excluded from re-merge

	sidebarCollapsed    bool
	collapsedCategories map[string]bool
	lastModified        int64
	state               LoadState

	sync SyncFunc
	subs []func()
	now  func() time.Time
}

// New creates an empty store over the given preference store.
func New(p *prefs.Store) *Store {
	return &Store{
		prefs:               p,
		defaults:            make(map[string]Site),
		removed:             make(map[string]bool),
		collapsedCategories: make(map[string]bool),
		now:                 time.Now,
	}
}

// SetSyncFunc installs the push-to-extension hook. The hook itself decides
// whether an agent is listening.
func (s *Store) SetSyncFunc(fn SyncFunc) {
	s.mu.Lock()
	s.sync = fn
	s.mu.Unlock()
}

// Subscribe registers a callback invoked after every catalog change.
// The current value is always available synchronously via Categories.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Initialize reconciles the three sources of truth: bundled defaults, the
// locally persisted snapshot and an optional extension-provided snapshot.
// The snapshot with the greater LastModified wins; defaults fill in any
// site not present by URL and not in the exclusion set. The merged result
// is persisted immediately so subsequent loads are stable.
func (s *Store) Initialize(defaultCategories []Category, available []AvailableSite, ext *Settings, state LoadState) {
	s.mu.Lock()

	s.available = available
	s.defaults = make(map[string]Site)
	for _, cat := range defaultCategories {
		for _, site := range cat.Sites {
			s.defaults[site.URL] = site
		}
	}

	local := loadLocalSettings(s.prefs)

	chosen := local
	if ext != nil && (chosen == nil || ext.LastModified > chosen.LastModified) {
		chosen = ext
	}

	if chosen == nil {
		s.categories = pruneEmpty(cloneCategories(defaultCategories))
		s.removed = make(map[string]bool)
		s.lastModified = s.now().UnixMilli()
	} else {
		s.categories = cloneCategories(chosen.Categories)
		s.sidebarCollapsed = chosen.SidebarCollapsed
		s.collapsedCategories = chosen.CollapsedCategories
		if s.collapsedCategories == nil {
			s.collapsedCategories = make(map[string]bool)
		}
		s.removed = make(map[string]bool)
		for _, url := range chosen.RemovedDefaultSites {
			s.removed[url] = true
		}
		s.lastModified = chosen.LastModified
		s.mergeDefaultsLocked(defaultCategories)
	}

	s.state = state
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// mergeDefaultsLocked appends every default site that is neither present by
// URL nor excluded, creating its category when absent.
func (s *Store) mergeDefaultsLocked(defaultCategories []Category) {
	present := make(map[string]bool)
	for _, cat := range s.categories {
		for _, site := range cat.Sites {
			present[site.URL] = true
		}
	}

	for _, defCat := range defaultCategories {
		for _, site := range defCat.Sites {
			if present[site.URL] || s.removed[site.URL] {
				continue
			}
			idx := -1
			for i := range s.categories {
				if s.categories[i].Name == defCat.Name {
					idx = i
					break
				}
			}
			if idx < 0 {
				s.categories = append(s.categories, Category{Name: defCat.Name})
				idx = len(s.categories) - 1
			}
			s.categories[idx].Sites = append(s.categories[idx].Sites, site)
			present[site.URL] = true
		}
	}
	s.categories = pruneEmpty(s.categories)
}

// State returns how the initial load went.
func (s *Store) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Categories returns a copy of the current category list.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCategories(s.categories)
}

// LastModified returns the snapshot timestamp in epoch milliseconds.
func (s *Store) LastModified() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastModified
}

// Snapshot returns the current settings snapshot.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Settings {
	removed := make([]string, 0, len(s.removed))
	for url := range s.removed {
		removed = append(removed, url)
	}
	sort.Strings(removed)

	collapsed := make(map[string]bool, len(s.collapsedCategories))
	for k, v := range s.collapsedCategories {
		collapsed[k] = v
	}

	return Settings{
		Categories:          cloneCategories(s.categories),
		SidebarCollapsed:    s.sidebarCollapsed,
		CollapsedCategories: collapsed,
		RemovedDefaultSites: removed,
		LastModified:        s.lastModified,
	}
}

// FindSite looks a site up by URL, returning its category name.
func (s *Store) FindSite(url string) (Site, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cat := range s.categories {
		for _, site := range cat.Sites {
			if site.URL == url {
				return site, cat.Name, true
			}
		}
	}
	return Site{}, "", false
}

// IsDefaultSite reports whether the URL belongs to the bundled catalog.
func (s *Store) IsDefaultSite(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.defaults[url]
	return ok
}

// AddSite appends a site to the named category, creating the category when
// new. Returns false when the URL already exists anywhere in the catalog;
// the catalog is left unchanged in that case.
func (s *Store) AddSite(site Site, categoryName string) bool {
	s.mu.Lock()
	for _, cat := range s.categories {
		for _, existing := range cat.Sites {
			if existing.URL == site.URL {
				s.mu.Unlock()
				return false
			}
		}
	}

	idx := -1
	for i := range s.categories {
		if s.categories[i].Name == categoryName {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.categories = append(s.categories, Category{Name: categoryName})
		idx = len(s.categories) - 1
	}
	s.categories[idx].Sites = append(s.categories[idx].Sites, site)

	s.commitLocked()
	s.mu.Unlock()
	s.notify()
	return true
}

// RemoveSite removes a site from its category. Bundled defaults are added
// to the exclusion set so future merges do not resurrect them.
func (s *Store) RemoveSite(site Site) {
	s.mu.Lock()
	if _, isDefault := s.defaults[site.URL]; isDefault {
		s.removed[site.URL] = true
	}
	for i := range s.categories {
		sites := s.categories[i].Sites[:0]
		for _, existing := range s.categories[i].Sites {
			if existing.URL != site.URL {
				sites = append(sites, existing)
			}
		}
		s.categories[i].Sites = sites
	}
	s.categories = pruneEmpty(s.categories)

	s.commitLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateSite replaces a site in place, keyed by its previous URL. Returns
// false when oldURL is absent, or when the new URL already belongs to a
// different site; URLs stay unique across the whole catalog.
func (s *Store) UpdateSite(oldURL string, updated Site) bool {
	s.mu.Lock()
	if updated.URL != oldURL {
		for _, cat := range s.categories {
			for _, existing := range cat.Sites {
				if existing.URL == updated.URL {
					s.mu.Unlock()
					return false
				}
			}
		}
	}
	for i := range s.categories {
		for j := range s.categories[i].Sites {
			if s.categories[i].Sites[j].URL == oldURL {
				s.categories[i].Sites[j] = updated
				s.commitLocked()
				s.mu.Unlock()
				s.notify()
				return true
			}
		}
	}
	s.mu.Unlock()
	return false
}

// MoveSiteToCategory detaches a site from one category and attaches it to
// another, creating the target when needed. Same-category moves are no-ops.
func (s *Store) MoveSiteToCategory(site Site, from, to string) {
	if from == to {
		return
	}
	s.mu.Lock()
	detached := false
	for i := range s.categories {
		if s.categories[i].Name != from {
			continue
		}
		sites := s.categories[i].Sites[:0]
		for _, existing := range s.categories[i].Sites {
			if existing.URL == site.URL {
				detached = true
				continue
			}
			sites = append(sites, existing)
		}
		s.categories[i].Sites = sites
	}
	if !detached {
		s.mu.Unlock()
		return
	}

	idx := -1
	for i := range s.categories {
		if s.categories[i].Name == to {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.categories = append(s.categories, Category{Name: to})
		idx = len(s.categories) - 1
	}
	s.categories[idx].Sites = append(s.categories[idx].Sites, site)
	s.categories = pruneEmpty(s.categories)

	s.commitLocked()
	s.mu.Unlock()
	s.notify()
}

// MoveSite swaps a site with its immediate neighbour within its category.
// Moves past either boundary are no-ops.
func (s *Store) MoveSite(site Site, categoryName string, dir Direction) {
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].Name != categoryName {
			continue
		}
		sites := s.categories[i].Sites
		for j := range sites {
			if sites[j].URL != site.URL {
				continue
			}
			k := j - 1
			if dir == Down {
				k = j + 1
			}
			if k < 0 || k >= len(sites) {
				s.mu.Unlock()
				return
			}
			sites[j], sites[k] = sites[k], sites[j]
			s.commitLocked()
			s.mu.Unlock()
			s.notify()
			return
		}
	}
	s.mu.Unlock()
}

// UpdateCategories replaces the whole category list, used after reordering.
func (s *Store) UpdateCategories(categories []Category) {
	s.mu.Lock()
	s.categories = pruneEmpty(cloneCategories(categories))
	s.commitLocked()
	s.mu.Unlock()
	s.notify()
}

// SidebarCollapsed returns the persisted sidebar state.
func (s *Store) SidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarCollapsed
}

// SetSidebarCollapsed persists the sidebar state.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	s.sidebarCollapsed = collapsed
	s.commitLocked()
	s.mu.Unlock()
	s.notify()
}

// IsCategoryCollapsed reports the collapse state for a category name.
func (s *Store) IsCategoryCollapsed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsedCategories[name]
}

// ToggleCategoryCollapsed flips and persists a category's collapse state.
func (s *Store) ToggleCategoryCollapsed(name string) {
	s.mu.Lock()
	s.collapsedCategories[name] = !s.collapsedCategories[name]
	s.commitLocked()
	s.mu.Unlock()
	s.notify()
}

// ApplyExtensionSettings adopts a snapshot pushed by the extension agent
// when it is newer than the local one.
func (s *Store) ApplyExtensionSettings(settings Settings) {
	s.mu.Lock()
	if settings.LastModified <= s.lastModified {
		s.mu.Unlock()
		return
	}
	s.categories = pruneEmpty(cloneCategories(settings.Categories))
	s.sidebarCollapsed = settings.SidebarCollapsed
	if settings.CollapsedCategories != nil {
		s.collapsedCategories = settings.CollapsedCategories
	}
	s.removed = make(map[string]bool)
	for _, url := range settings.RemovedDefaultSites {
		s.removed[url] = true
	}
	s.lastModified = settings.LastModified
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// commitLocked bumps LastModified, persists and schedules an extension
// push. Callers hold s.mu.
func (s *Store) commitLocked() {
	ts := s.now().UnixMilli()
	if ts <= s.lastModified {
		ts = s.lastModified + 1
	}
	s.lastModified = ts
	s.persistLocked()
	if s.sync != nil {
		go s.sync(s.snapshotLocked())
	}
}

func (s *Store) persistLocked() {
	s.prefs.Save(prefs.KeySettings, s.snapshotLocked())
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := append([]func(){}, s.subs...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// loadLocalSettings reads the persisted snapshot, if any.
func loadLocalSettings(p *prefs.Store) *Settings {
	var settings Settings
	if !p.Load(prefs.KeySettings, &settings) {
		return nil
	}
	return &settings
}
