package dialog

import (
	"path/filepath"
	"testing"

	"thechannel/catalog"
	"thechannel/prefs"
)

type fakeAgent struct {
	active       bool
	managed      []string
	permission   []string // domains RequestPermission was called with
	refusePrompt bool     // simulate an agent gone inactive mid-plan
}

func (a *fakeAgent) Active() bool                    { return a.active }
func (a *fakeAgent) RequestManagedDomains() []string { return a.managed }
func (a *fakeAgent) RequestPermission(domain, name string) bool {
	a.permission = append(a.permission, domain)
	return !a.refusePrompt
}

func TestPlanForSiteNativeLogin(t *testing.T) {
	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	o := New(p)
	site := catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il", GoogleLoginSupported: true}

	o.PlanForSite(site, &fakeAgent{active: true})
	if o.Visible() != LoginTutorial {
		t.Fatalf("expected LoginTutorial, got %v", o.Visible())
	}
	o.Close(LoginTutorial, false)

	// Second selection of the same URL shows nothing: once per URL
	o.PlanForSite(site, &fakeAgent{active: true})
	if o.Visible() != None {
		t.Errorf("tutorial should show once per URL, got %v", o.Visible())
	}
}

func TestPlanForSiteNativeLoginDisabled(t *testing.T) {
	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	p.SetBool(prefs.KeyNeverShowLoginTutorial, true)
	o := New(p)

	o.PlanForSite(catalog.Site{URL: "https://www.ynet.co.il", GoogleLoginSupported: true}, nil)
	if o.Visible() != None {
		t.Errorf("disabled tutorial should not show, got %v", o.Visible())
	}
}

func TestPlanForSiteNoAgent(t *testing.T) {
	o := testOrchestrator(t)

	o.PlanForSite(catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}, &fakeAgent{active: false})
	if o.Visible() != InstallExtension {
		t.Fatalf("expected InstallExtension, got %v", o.Visible())
	}
}

func TestPlanForSiteManagedDomain(t *testing.T) {
	o := testOrchestrator(t)
	agent := &fakeAgent{active: true, managed: []string{"mako.co.il"}}

	o.PlanForSite(catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}, agent)
	if o.Visible() != LoginTutorial {
		t.Fatalf("managed domain should get the tutorial, got %v", o.Visible())
	}
	if len(agent.permission) != 0 {
		t.Error("managed domain must not trigger a permission request")
	}
}

func TestPlanForSiteUnmanagedDomain(t *testing.T) {
	o := testOrchestrator(t)
	agent := &fakeAgent{active: true, managed: []string{"other.example"}}

	o.PlanForSite(catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}, agent)
	if o.Visible() != None {
		t.Errorf("unmanaged domain shows no local dialog, got %v", o.Visible())
	}
	if len(agent.permission) != 1 || agent.permission[0] != "mako.co.il" {
		t.Errorf("expected permission request for mako.co.il, got %v", agent.permission)
	}
}

func TestPlanForSitePermissionFallback(t *testing.T) {
	o := testOrchestrator(t)
	agent := &fakeAgent{active: true, refusePrompt: true}
	site := catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}

	// When the agent cannot dispatch its own prompt, we show ours.
	o.PlanForSite(site, agent)
	if o.Visible() != GrantPermission {
		t.Fatalf("expected GrantPermission fallback, got %v", o.Visible())
	}
	if o.Site().URL != site.URL {
		t.Errorf("dialog carries site %q", o.Site().URL)
	}
	o.Close(GrantPermission, true)

	// Once permanently dismissed, the refusal shows nothing.
	o.PlanForSite(site, agent)
	if o.Visible() != None {
		t.Errorf("disabled fallback should not show, got %v", o.Visible())
	}
}

func TestPlanStartup(t *testing.T) {
	o := testOrchestrator(t)

	o.PlanStartup(true)
	if o.Visible() != Welcome {
		t.Fatalf("expected Welcome, got %v", o.Visible())
	}
	o.Close(Welcome, false)
	if o.Visible() != CookiesBlocked {
		t.Fatalf("expected CookiesBlocked after Welcome, got %v", o.Visible())
	}
	o.Close(CookiesBlocked, false)

	// With Welcome permanently dismissed, only the cookie warning remains
	o2 := testOrchestrator(t)
	o2.OpenWelcome()
	o2.Close(Welcome, true)
	o2.PlanStartup(false)
	if o2.Visible() != None {
		t.Errorf("nothing should show, got %v", o2.Visible())
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"https://www.ynet.co.il/home", "ynet.co.il"},
		{"https://sport5.co.il", "sport5.co.il"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := Hostname(tt.in); got != tt.expected {
			t.Errorf("Hostname(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
