package catalog

import "strings"

// FilterCategories returns the categories whose sites match the search
// term by name, dropping categories left empty. An empty term returns the
// full list.
func (s *Store) FilterCategories(term string) []Category {
	cats := s.Categories()
	if term == "" {
		return cats
	}
	term = strings.ToLower(term)

	var out []Category
	for _, cat := range cats {
		var sites []Site
		for _, site := range cat.Sites {
			if strings.Contains(strings.ToLower(site.Name), term) {
				sites = append(sites, site)
			}
		}
		if len(sites) > 0 {
			out = append(out, Category{Name: cat.Name, Sites: sites})
		}
	}
	return out
}

// AvailableMatches returns quick-add suggestions matching the term,
// excluding URLs already present in the user's categories. An empty term
// returns nothing: suggestions only appear while searching.
func (s *Store) AvailableMatches(term string) []AvailableSite {
	if term == "" {
		return nil
	}
	term = strings.ToLower(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	present := make(map[string]bool)
	for _, cat := range s.categories {
		for _, site := range cat.Sites {
			present[site.URL] = true
		}
	}

	var out []AvailableSite
	for _, avail := range s.available {
		if present[avail.URL] {
			continue
		}
		if strings.Contains(strings.ToLower(avail.Name), term) {
			out = append(out, avail)
		}
	}
	return out
}

// DefaultCategoryName is where quick-added sites land when the suggestion
// carries no category of its own.
const DefaultCategoryName = "כללי"

// AddAvailable adds a suggested site into its suggested category.
func (s *Store) AddAvailable(avail AvailableSite) bool {
	category := avail.Category
	if category == "" {
		category = DefaultCategoryName
	}
	return s.AddSite(avail.Site, category)
}
