package dialog

import (
	"path/filepath"
	"testing"

	"thechannel/catalog"
	"thechannel/prefs"
)

func testOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return New(prefs.Open(filepath.Join(t.TempDir(), "prefs.json")))
}

func TestQueueFIFO(t *testing.T) {
	o := testOrchestrator(t)

	o.Enqueue(func() { o.OpenWelcome() })
	o.Enqueue(func() { o.OpenCookiesBlocked() })

	if o.Visible() != None {
		t.Fatal("Enqueue must not display anything by itself")
	}

	o.ProcessNext()
	if o.Visible() != Welcome {
		t.Fatalf("expected Welcome first, got %v", o.Visible())
	}
	if o.QueueLen() != 1 {
		t.Errorf("expected 1 queued entry, got %d", o.QueueLen())
	}

	// Second ProcessNext is a no-op while Welcome is visible
	o.ProcessNext()
	if o.Visible() != Welcome {
		t.Error("ProcessNext must not replace a visible dialog")
	}

	// Closing drains the next entry synchronously
	o.Close(Welcome, false)
	if o.Visible() != CookiesBlocked {
		t.Fatalf("expected CookiesBlocked after close, got %v", o.Visible())
	}

	o.Close(CookiesBlocked, false)
	if o.Visible() != None {
		t.Error("queue should be drained")
	}
}

func TestCloseWrongKindIgnored(t *testing.T) {
	o := testOrchestrator(t)
	o.OpenWelcome()
	o.Close(CookiesBlocked, false)
	if o.Visible() != Welcome {
		t.Error("closing a non-visible kind must not dismiss the dialog")
	}
}

func TestNeverShowAgain(t *testing.T) {
	o := testOrchestrator(t)

	o.OpenWelcome()
	o.Close(Welcome, true)

	if !o.Disabled(Welcome) {
		t.Error("Welcome should be disabled after never-again close")
	}
	// ConfirmDelete has no never-show key and can never be disabled
	if o.Disabled(ConfirmDelete) {
		t.Error("ConfirmDelete must not be disableable")
	}
}

func TestPermissionDialogsCarrySite(t *testing.T) {
	o := testOrchestrator(t)
	site := catalog.Site{Name: "מאקו", URL: "https://www.mako.co.il"}

	o.OpenGrantPermission(site)
	if o.Visible() != GrantPermission || o.Site().URL != site.URL {
		t.Fatalf("got %v for %q", o.Visible(), o.Site().URL)
	}
	o.Close(GrantPermission, true)
	if !o.Disabled(GrantPermission) {
		t.Error("GrantPermission should honor never-show")
	}

	o.OpenGoogleLoginUnsupported(site)
	if o.Visible() != GoogleLoginUnsupported || o.Site().Name != "מאקו" {
		t.Fatalf("got %v for %q", o.Visible(), o.Site().Name)
	}
}

func TestFocusSaveRestore(t *testing.T) {
	o := testOrchestrator(t)

	restored := ""
	o.SetFocusHooks(
		func() string { return "https://www.ynet.co.il" },
		func(token string) { restored = token },
	)

	o.OpenConfirmDelete(catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il"})
	o.Close(ConfirmDelete, false)

	if restored != "https://www.ynet.co.il" {
		t.Errorf("focus restored to %q, expected the saved token", restored)
	}
}

func TestLoginTutorialMarksViewed(t *testing.T) {
	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	o := New(p)

	site := catalog.Site{Name: "Ynet", URL: "https://www.ynet.co.il", GoogleLoginSupported: true}
	o.OpenLoginTutorial(site)

	if !p.HasViewedTutorial(site.URL) {
		t.Error("opening the tutorial should record the site URL")
	}
}

func TestSubmitInputCallback(t *testing.T) {
	o := testOrchestrator(t)

	got := ""
	o.OpenInput(InputConfig{
		Title:    "העברת ערוץ",
		Callback: func(value string) { got = value },
	})
	o.SubmitInput("כלכלה")

	if got != "כלכלה" {
		t.Errorf("callback got %q", got)
	}
	if o.Visible() != None {
		t.Error("input dialog should close after submit")
	}

	// Empty values close without invoking the callback
	called := false
	o.OpenInput(InputConfig{Callback: func(string) { called = true }})
	o.SubmitInput("")
	if called {
		t.Error("empty submit must not invoke the callback")
	}
}
