// Package dialog serializes the presentation of modal dialogs: a FIFO
// queue drained one entry per dismissal, gated so at most one dialog is
// ever visible.
package dialog

import (
	"sync"

	"thechannel/catalog"
	"thechannel/prefs"
)

// Kind identifies a dialog.
type Kind int

const (
	None Kind = iota
	AddSite
	EditSite
	ConfirmDelete
	Input
	LoginTutorial
	Welcome
	GoogleLoginUnsupported
	GrantPermission
	InstallExtension
	CookiesBlocked
)

// neverShowKeys maps permanently-dismissable dialogs to their preference
// keys. Dialogs without an entry cannot be disabled.
var neverShowKeys = map[Kind]string{
	LoginTutorial:    prefs.KeyNeverShowLoginTutorial,
	Welcome:          prefs.KeyNeverShowWelcome,
	GrantPermission:  prefs.KeyNeverShowGrantPermission,
	InstallExtension: prefs.KeyNeverShowInstallExtension,
	CookiesBlocked:   prefs.KeyNeverShowCookiesBlocked,
}

// InputConfig drives the generic single-field input dialog.
type InputConfig struct {
	Title       string
	Label       string
	Placeholder string
	ConfirmText string
	Callback    func(value string)
}

// Orchestrator owns dialog visibility. Open* methods display immediately
// (saving focus); Enqueue defers display until the queue drains to the
// entry.
type Orchestrator struct {
	mu      sync.Mutex
	prefs   *prefs.Store
	queue   []func()
	visible Kind

	site     catalog.Site // subject site for site-scoped dialogs
	category string       // category for EditSite
	input    *InputConfig

	saveFocus    func() string
	restoreFocus func(string)
	savedFocus   string
	onChange     func()
}

// New creates an orchestrator over the given preference store.
func New(p *prefs.Store) *Orchestrator {
	return &Orchestrator{prefs: p}
}

// SetFocusHooks wires focus save/restore into the embedding UI: save runs
// when a dialog opens, restore with the saved token when it closes.
func (o *Orchestrator) SetFocusHooks(save func() string, restore func(string)) {
	o.mu.Lock()
	o.saveFocus = save
	o.restoreFocus = restore
	o.mu.Unlock()
}

// OnChange registers a callback fired whenever visibility changes.
func (o *Orchestrator) OnChange(fn func()) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// Visible returns the currently displayed dialog, None when idle.
func (o *Orchestrator) Visible() Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Site returns the subject site of the visible site-scoped dialog.
func (o *Orchestrator) Site() catalog.Site {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.site
}

// Category returns the category of the visible EditSite dialog.
func (o *Orchestrator) Category() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.category
}

// Input returns the configuration of the visible input dialog.
func (o *Orchestrator) Input() *InputConfig {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.input
}

// Enqueue appends a deferred dialog action. It never displays by itself;
// call ProcessNext to drain.
func (o *Orchestrator) Enqueue(fn func()) {
	o.mu.Lock()
	o.queue = append(o.queue, fn)
	o.mu.Unlock()
}

// ProcessNext displays the front queue entry. No-op while a dialog is
// visible or the queue is empty.
func (o *Orchestrator) ProcessNext() {
	o.mu.Lock()
	if o.visible != None || len(o.queue) == 0 {
		o.mu.Unlock()
		return
	}
	next := o.queue[0]
	o.queue = o.queue[1:]
	o.mu.Unlock()

	next()
}

// QueueLen returns the number of pending entries.
func (o *Orchestrator) QueueLen() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Disabled reports whether a dialog kind was permanently dismissed.
func (o *Orchestrator) Disabled(kind Kind) bool {
	key, ok := neverShowKeys[kind]
	if !ok {
		return false
	}
	return o.prefs.Bool(key)
}

func (o *Orchestrator) open(kind Kind, site catalog.Site, category string, input *InputConfig) {
	o.mu.Lock()
	if o.saveFocus != nil {
		o.savedFocus = o.saveFocus()
	}
	o.visible = kind
	o.site = site
	o.category = category
	o.input = input
	change := o.onChange
	o.mu.Unlock()
	if change != nil {
		change()
	}
}

// OpenAddSite shows the add-site dialog.
func (o *Orchestrator) OpenAddSite() { o.open(AddSite, catalog.Site{}, "", nil) }

// OpenEditSite shows the edit dialog for a site in a category.
func (o *Orchestrator) OpenEditSite(site catalog.Site, category string) {
	o.open(EditSite, site, category, nil)
}

// OpenConfirmDelete shows the delete confirmation for a site.
func (o *Orchestrator) OpenConfirmDelete(site catalog.Site) {
	o.open(ConfirmDelete, site, "", nil)
}

// OpenInput shows the generic input dialog.
func (o *Orchestrator) OpenInput(cfg InputConfig) { o.open(Input, catalog.Site{}, "", &cfg) }

// OpenLoginTutorial shows the login tutorial for a site and records the
// site URL as having seen it.
func (o *Orchestrator) OpenLoginTutorial(site catalog.Site) {
	o.prefs.MarkTutorialViewed(site.URL)
	o.open(LoginTutorial, site, "", nil)
}

// OpenWelcome shows the onboarding welcome dialog.
func (o *Orchestrator) OpenWelcome() { o.open(Welcome, catalog.Site{}, "", nil) }

// OpenGoogleLoginUnsupported shows the no-native-login notice for a site.
func (o *Orchestrator) OpenGoogleLoginUnsupported(site catalog.Site) {
	o.open(GoogleLoginUnsupported, site, "", nil)
}

// OpenGrantPermission shows the grant-permission dialog for a site.
func (o *Orchestrator) OpenGrantPermission(site catalog.Site) {
	o.open(GrantPermission, site, "", nil)
}

// OpenInstallExtension shows the install-extension prompt for a site.
func (o *Orchestrator) OpenInstallExtension(site catalog.Site) {
	o.open(InstallExtension, site, "", nil)
}

// OpenCookiesBlocked shows the third-party-cookies warning.
func (o *Orchestrator) OpenCookiesBlocked() { o.open(CookiesBlocked, catalog.Site{}, "", nil) }

// SubmitInput completes the visible input dialog, invoking its callback
// for non-empty values, then closes it.
func (o *Orchestrator) SubmitInput(value string) {
	o.mu.Lock()
	cfg := o.input
	o.mu.Unlock()
	if cfg != nil && value != "" && cfg.Callback != nil {
		cfg.Callback(value)
	}
	o.Close(Input, false)
}

// Close dismisses the visible dialog. With neverAgain set the dialog kind
// is permanently disabled. Focus returns to where it was before the
// dialog opened, then the queue drains its next entry.
func (o *Orchestrator) Close(kind Kind, neverAgain bool) {
	o.mu.Lock()
	if o.visible != kind {
		o.mu.Unlock()
		return
	}
	o.visible = None
	o.site = catalog.Site{}
	o.category = ""
	o.input = nil
	restore := o.restoreFocus
	focus := o.savedFocus
	o.savedFocus = ""
	change := o.onChange
	o.mu.Unlock()

	if neverAgain {
		if key, ok := neverShowKeys[kind]; ok {
			o.prefs.SetBool(key, true)
		}
	}
	if restore != nil {
		restore(focus)
	}
	if change != nil {
		change()
	}

	o.ProcessNext()
}
