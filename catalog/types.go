// Package catalog owns the in-memory list of channel categories and sites,
// reconciles it between bundled defaults, local storage and the extension
// agent, and exposes the mutation operations the sidebar needs.
package catalog

// Site is a user-configured external URL shown in the content pane.
// Sites are unique by URL across the whole catalog.
type Site struct {
	Name                 string `json:"name"`
	URL                  string `json:"url"`
	GoogleLoginSupported bool   `json:"googleLoginSupported,omitempty"`
}

// Category is a named, ordered grouping of sites. Categories with no sites
// are pruned after every mutation.
type Category struct {
	Name  string `json:"name"`
	Sites []Site `json:"sites"`
}

// AvailableSite is a suggested site from the static catalog, offered for
// quick-add when it is not already present in the user's categories.
type AvailableSite struct {
	Site
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Settings is the unit of synchronization between local storage and the
// extension agent. LastModified is epoch milliseconds and strictly
// increases on every local mutation; the larger timestamp wins on merge.
type Settings struct {
	Categories          []Category      `json:"categories"`
	SidebarCollapsed    bool            `json:"sidebarCollapsed"`
	CollapsedCategories map[string]bool `json:"collapsedCategories"`
	RemovedDefaultSites []string        `json:"removedDefaultSites,omitempty"`
	LastModified        int64           `json:"lastModified"`
}

// Direction of a within-category move.
type Direction int

const (
	Up Direction = iota
	Down
)

// LoadState tracks how catalog loading went, for the status line.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	LoadError
)

func cloneCategories(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = Category{Name: c.Name, Sites: append([]Site(nil), c.Sites...)}
	}
	return out
}

// pruneEmpty drops categories left without sites.
func pruneEmpty(cats []Category) []Category {
	out := cats[:0]
	for _, c := range cats {
		if len(c.Sites) > 0 {
			out = append(out, c)
		}
	}
	return out
}
