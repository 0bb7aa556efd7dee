package view

import (
	"net/url"
	"strings"

	"thechannel/catalog"
)

// Navigation parameters this system recognizes in deep links. Anything
// else (marketing tracking and the like) is carried through verbatim.
var knownParams = []string{"name", "url", "category", "view", "source", "section"}

// Link is a parsed deep link.
type Link struct {
	Name     string
	URL      string
	Category string
	View     string // custom/advertise/contact/help, "" for a site link
	Source   string
	Section  string
	Extra    map[string]string
}

// ParseLink parses a deep link from a query string, with or without a
// leading "?". Unrecognized parameters land in Extra.
func ParseLink(raw string) Link {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	values, err := url.ParseQuery(raw)
	link := Link{Extra: make(map[string]string)}
	if err != nil {
		return link
	}

	link.Name = values.Get("name")
	link.URL = values.Get("url")
	link.Category = values.Get("category")
	link.View = values.Get("view")
	link.Source = values.Get("source")
	link.Section = values.Get("section")

	for key := range values {
		if !isKnownParam(key) {
			link.Extra[key] = values.Get(key)
		}
	}
	return link
}

// Encode renders the link back to a query string. Known parameters are
// emitted only when set; extras are always preserved.
func (l Link) Encode() string {
	values := url.Values{}
	set := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}
	set("name", l.Name)
	set("url", l.URL)
	set("category", l.Category)
	set("view", l.View)
	set("source", l.Source)
	set("section", l.Section)
	for key, val := range l.Extra {
		values.Set(key, val)
	}
	return values.Encode()
}

func isKnownParam(key string) bool {
	for _, k := range knownParams {
		if k == key {
			return true
		}
	}
	return false
}

// ApplyLink navigates according to a parsed deep link, remembering its
// unrecognized parameters for future links. The resolve function maps a
// URL back to its catalog entry; unknown URLs still open, as ad hoc sites.
func (s *State) ApplyLink(link Link, resolve func(u string) (catalog.Site, string, bool)) bool {
	s.mu.Lock()
	for key, val := range link.Extra {
		s.extra[key] = val
	}
	s.mu.Unlock()

	switch {
	case link.View != "" && link.View != "site":
		source := link.Source
		if link.View != "custom" {
			source = link.View
		}
		if source == "" {
			return false
		}
		s.ShowCustom(source, link.Section)
		return true

	case link.URL != "":
		site := catalog.Site{Name: link.Name, URL: link.URL}
		category := link.Category
		if resolve != nil {
			if rs, rc, ok := resolve(link.URL); ok {
				site, category = rs, rc
			}
		}
		if site.Name == "" {
			site.Name = link.URL
		}
		s.SelectSite(site, category)
		return true
	}
	return false
}

// CurrentLink reflects the selection into a deep link, preserving the
// extra parameters seen so far.
func (s *State) CurrentLink() Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link := Link{Extra: make(map[string]string)}
	for key, val := range s.extra {
		link.Extra[key] = val
	}

	switch {
	case s.selected != nil:
		link.Name = s.selected.Name
		link.URL = s.selected.URL
		link.Category = s.category
	case s.source != "":
		switch s.source {
		case "advertise", "contact", "help":
			link.View = s.source
		default:
			link.View = "custom"
			link.Source = s.source
		}
		link.Section = s.section
	}
	return link
}

// AddUTM appends the outbound campaign parameters to a site URL unless
// they are already present. Invalid URLs pass through untouched.
func AddUTM(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil {
		return siteURL
	}
	q := u.Query()
	if q.Get("utm_source") == "" {
		q.Set("utm_source", "haharuts")
	}
	if q.Get("utm_medium") == "" {
		q.Set("utm_medium", "iframe")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
