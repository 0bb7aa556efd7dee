package main

import (
	"sync"

	"thechannel/content"
)

// paneView holds the content pane's state. Fetches complete on their own
// goroutines while the input loop reads and scrolls, so all access goes
// through the mutex; a generation counter makes sure a slow fetch cannot
// overwrite the result of a later one.
type paneView struct {
	mu      sync.Mutex
	seq     int
	lines   []content.Line
	title   string // fetched page title, overrides the view title when set
	loading bool
	scroll  int
}

// begin clears the pane for a new load and returns the generation token
// the loader must present when finishing.
func (p *paneView) begin() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.lines = nil
	p.title = ""
	p.loading = true
	p.scroll = 0
	return p.seq
}

// finish installs a load result. Stale generations are dropped.
func (p *paneView) finish(seq int, lines []content.Line, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return
	}
	p.lines = lines
	p.title = title
	p.loading = false
}

// fail installs a single error line in place of content.
func (p *paneView) fail(seq int, message string) {
	p.finish(seq, []content.Line{{Text: message}}, "")
}

// snapshot returns a consistent copy for painting.
func (p *paneView) snapshot() (lines []content.Line, title string, loading bool, scroll int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lines, p.title, p.loading, p.scroll
}

func (p *paneView) maxScrollLocked(visible int) int {
	m := len(p.lines) - visible
	if m < 0 {
		m = 0
	}
	return m
}

// scrollBy moves the viewport by delta lines, clamped to the content.
func (p *paneView) scrollBy(delta, visible int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scroll += delta
	if max := p.maxScrollLocked(visible); p.scroll > max {
		p.scroll = max
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// scrollToEnd jumps to the bottom of the content.
func (p *paneView) scrollToEnd(visible int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scroll = p.maxScrollLocked(visible)
}
