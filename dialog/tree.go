package dialog

import (
	"net/url"
	"strings"

	"thechannel/catalog"
)

// Agent is the slice of the extension bridge the decision tree consults.
type Agent interface {
	Active() bool
	RequestManagedDomains() []string
	RequestPermission(domain, name string) bool
}

// PlanForSite evaluates the onboarding decision tree for a freshly
// selected site and enqueues the resulting dialogs. RequestManagedDomains
// blocks up to the bridge timeout, so callers run this off the UI loop.
//
// Order of evaluation:
//  1. Native login support: login tutorial, once per URL, unless disabled.
//  2. Extension-managed login: install prompt when no agent is active;
//     with an active agent, the tutorial when the domain is already on the
//     managed allow-list, otherwise the agent is asked to prompt for
//     permission itself.
func (o *Orchestrator) PlanForSite(site catalog.Site, agent Agent) {
	defer o.ProcessNext()

	if site.GoogleLoginSupported {
		if o.Disabled(LoginTutorial) || o.prefs.HasViewedTutorial(site.URL) {
			return
		}
		o.Enqueue(func() { o.OpenLoginTutorial(site) })
		return
	}

	if agent == nil || !agent.Active() {
		if o.Disabled(InstallExtension) {
			return
		}
		o.Enqueue(func() { o.OpenInstallExtension(site) })
		return
	}

	domain := Hostname(site.URL)
	for _, managed := range agent.RequestManagedDomains() {
		if domain == managed {
			if o.Disabled(LoginTutorial) || o.prefs.HasViewedTutorial(site.URL) {
				return
			}
			o.Enqueue(func() { o.OpenLoginTutorial(site) })
			return
		}
	}

	// Not managed yet: the agent shows its own permission popup. When it
	// went inactive between the checks above, fall back to our own prompt.
	if !agent.RequestPermission(domain, site.Name) && !o.Disabled(GrantPermission) {
		o.Enqueue(func() { o.OpenGrantPermission(site) })
	}
}

// PlanStartup enqueues the dialogs evaluated once at startup, independent
// of site selection.
func (o *Orchestrator) PlanStartup(cookiesBlocked bool) {
	defer o.ProcessNext()

	if !o.Disabled(Welcome) {
		o.Enqueue(func() { o.OpenWelcome() })
	}
	if cookiesBlocked && !o.Disabled(CookiesBlocked) {
		o.Enqueue(func() { o.OpenCookiesBlocked() })
	}
}

// Hostname extracts the bare host of a site URL, dropping any www prefix.
func Hostname(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return siteURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
