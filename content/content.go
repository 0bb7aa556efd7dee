// Package content loads custom content fragments (help pages, advertise
// and contact views) from the content base URL and renders them for the
// terminal.
package content

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Fragment is a loaded piece of custom content plus its optional
// companion resources.
type Fragment struct {
	Source    string
	HTML      string
	StyleURL  string // non-empty when <base>/<source>/style.css exists
	ScriptURL string // non-empty when <base>/<source>/script.js exists
	IsError   bool
}

// Loader fetches content fragments. At most one fragment is live at a
// time; loading a new one discards the previous fragment and its
// companion resources first.
type Loader struct {
	mu      sync.Mutex
	baseURL string
	client  *http.Client
	current *Fragment
	subs    []func(*Fragment)
}

// NewLoader creates a loader rooted at baseURL.
func NewLoader(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Subscribe registers a callback invoked whenever the current fragment
// changes. A nil fragment means content was cleaned up.
func (l *Loader) Subscribe(fn func(*Fragment)) {
	l.mu.Lock()
	l.subs = append(l.subs, fn)
	l.mu.Unlock()
}

// Current returns the live fragment, or nil when none is loaded.
func (l *Loader) Current() *Fragment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// LoadFromSource fetches <base>/<source>/index.html and probes for its
// companion style.css and script.js. On failure the current fragment
// becomes an error notice and the error is returned.
func (l *Loader) LoadFromSource(source string) error {
	l.Cleanup()

	base := fmt.Sprintf("%s/%s", l.baseURL, source)

	body, err := l.fetch(base + "/index.html")
	if err != nil {
		err = fmt.Errorf("קובץ index.html לא נמצא בתיקייה '%s'", source)
		l.set(&Fragment{
			Source:  source,
			HTML:    errorFragment(err),
			IsError: true,
		})
		return err
	}

	frag := &Fragment{Source: source, HTML: body}
	if l.exists(base + "/style.css") {
		frag.StyleURL = base + "/style.css"
	}
	if l.exists(base + "/script.js") {
		frag.ScriptURL = base + "/script.js"
	}
	l.set(frag)
	return nil
}

// Cleanup discards the live fragment.
func (l *Loader) Cleanup() {
	l.set(nil)
}

func (l *Loader) set(f *Fragment) {
	l.mu.Lock()
	l.current = f
	subs := make([]func(*Fragment), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(f)
	}
}

func (l *Loader) fetch(url string) (string, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (l *Loader) exists(url string) bool {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func errorFragment(err error) string {
	return fmt.Sprintf(`<div><h2>שגיאה בטעינת התוכן</h2><p>%s</p></div>`, err.Error())
}
