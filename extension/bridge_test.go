package extension

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"thechannel/catalog"
)

// fakeAgent drives the far end of a bridge connection in tests.
type fakeAgent struct {
	conn net.Conn
	enc  *json.Encoder
	recv chan Message
}

func newFakeAgent(t *testing.T) (*fakeAgent, *Bridge) {
	t.Helper()
	near, far := net.Pipe()

	a := &fakeAgent{
		conn: far,
		enc:  json.NewEncoder(far),
		recv: make(chan Message, 16),
	}
	go func() {
		scanner := bufio.NewScanner(far)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			var msg Message
			if json.Unmarshal(scanner.Bytes(), &msg) == nil {
				a.recv <- msg
			}
		}
	}()

	b := NewOverConn(near, Options{ResponseTimeout: 500 * time.Millisecond})
	t.Cleanup(func() {
		b.Close()
		far.Close()
	})
	return a, b
}

func (a *fakeAgent) send(t *testing.T, msg Message) {
	t.Helper()
	if err := a.enc.Encode(msg); err != nil {
		t.Fatalf("agent send: %v", err)
	}
}

func (a *fakeAgent) expect(t *testing.T, msgType string) Message {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-a.recv:
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("agent never received %s", msgType)
		}
	}
}

func TestRequestSettingsRoundtrip(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	go func() {
		agent.expect(t, TypeAppReady)
		payload, _ := json.Marshal(SettingsResponse{
			Settings: &catalog.Settings{
				Categories:   []catalog.Category{{Name: "חדשות"}},
				LastModified: 777,
			},
			LastModified: 777,
		})
		agent.send(t, Message{Type: TypeSettingsData, Payload: payload})
	}()

	resp := bridge.RequestSettings()
	if resp == nil {
		t.Fatal("expected a settings response")
	}
	if resp.Settings == nil || resp.Settings.LastModified != 777 {
		t.Errorf("unexpected settings: %+v", resp.Settings)
	}
	if !bridge.Active() {
		t.Error("SETTINGS_DATA should latch the bridge active")
	}
}

func TestRequestSettingsTimeoutClearsActive(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	// Activate first via EXTENSION_READY
	agent.send(t, Message{Type: TypeExtensionReady})
	agent.expect(t, TypeGetUnreadStatus)
	agent.expect(t, TypeGetMutedDomains)
	if !bridge.Active() {
		t.Fatal("bridge should be active after EXTENSION_READY")
	}

	// Agent goes silent: the request times out and resets the latch
	if resp := bridge.RequestSettings(); resp != nil {
		t.Errorf("expected nil on timeout, got %+v", resp)
	}
	if bridge.Active() {
		t.Error("settings timeout should clear the active latch")
	}
}

func TestRequestManagedDomainsRequiresActive(t *testing.T) {
	_, bridge := newFakeAgent(t)

	if domains := bridge.RequestManagedDomains(); domains != nil {
		t.Errorf("inactive bridge should resolve nil, got %v", domains)
	}
}

func TestRequestManagedDomainsRoundtrip(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	agent.send(t, Message{Type: TypeExtensionReady})
	agent.expect(t, TypeGetUnreadStatus)

	go func() {
		agent.expect(t, TypeGetManagedDomains)
		payload, _ := json.Marshal([]string{"ynet.co.il", "mako.co.il"})
		agent.send(t, Message{Type: TypeManagedDomainsData, Payload: payload})
	}()

	domains := bridge.RequestManagedDomains()
	if len(domains) != 2 || domains[0] != "ynet.co.il" {
		t.Errorf("unexpected domains: %v", domains)
	}
}

func TestSupersededRequestResolvesNil(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	first := make(chan *SettingsResponse, 1)
	go func() { first <- bridge.RequestSettings() }()
	agent.expect(t, TypeAppReady)

	// A concurrent second request supersedes the first
	go func() {
		agent.expect(t, TypeAppReady)
		payload, _ := json.Marshal(SettingsResponse{LastModified: 1})
		agent.send(t, Message{Type: TypeSettingsData, Payload: payload})
	}()
	second := bridge.RequestSettings()

	if second == nil {
		t.Error("superseding request should get the reply")
	}
	select {
	case resp := <-first:
		if resp != nil {
			t.Errorf("superseded request should resolve nil, got %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request never resolved")
	}
}

func TestUnreadAndMutedState(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	changed := make(chan struct{}, 8)
	bridge.OnChange(func() { changed <- struct{}{} })

	agent.send(t, Message{Type: TypeExtensionReady})
	agent.expect(t, TypeGetUnreadStatus)
	agent.expect(t, TypeGetMutedDomains)

	payload, _ := json.Marshal([]string{"ynet.co.il"})
	agent.send(t, Message{Type: TypeUnreadStatusData, Payload: payload})
	<-changed

	if !bridge.HasUnread("ynet.co.il") {
		t.Error("ynet.co.il should be unread")
	}
	if bridge.HasUnread("mako.co.il") {
		t.Error("mako.co.il should not be unread")
	}

	payload, _ = json.Marshal([]string{"mako.co.il"})
	agent.send(t, Message{Type: TypeMutedDomainsData, Payload: payload})
	<-changed

	if !bridge.IsMuted("mako.co.il") {
		t.Error("mako.co.il should be muted")
	}

	// An update frame replaces the unread set wholesale
	payload, _ = json.Marshal([]string{})
	agent.send(t, Message{Type: TypeUnreadStatusUpdate, Payload: payload})
	<-changed
	if bridge.HasUnread("ynet.co.il") {
		t.Error("unread set should be replaced by the update")
	}
}

func TestSettingsPushCallback(t *testing.T) {
	agent, bridge := newFakeAgent(t)

	pushed := make(chan SettingsResponse, 1)
	bridge.OnSettingsPush(func(resp SettingsResponse) { pushed <- resp })

	payload, _ := json.Marshal(SettingsResponse{
		Settings:     &catalog.Settings{LastModified: 42},
		LastModified: 42,
	})
	agent.send(t, Message{Type: TypeSettingsData, Payload: payload})
	agent.expect(t, TypeGetUnreadStatus)

	select {
	case resp := <-pushed:
		if resp.Settings == nil || resp.Settings.LastModified != 42 {
			t.Errorf("unexpected push: %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("push callback never fired")
	}
}

func TestInertBridge(t *testing.T) {
	b := newBridge(Options{})
	if b.Transport() != TransportNone {
		t.Fatalf("expected TransportNone, got %v", b.Transport())
	}
	if b.RequestSettings() != nil {
		t.Error("inert bridge should resolve nil settings")
	}
	if b.RequestManagedDomains() != nil {
		t.Error("inert bridge should resolve nil domains")
	}
	if b.Active() {
		t.Error("inert bridge is never active")
	}
	// Fire-and-forget sends must be safe no-ops
	b.ToggleMuteDomain("ynet.co.il")
	b.NotifySidebarAction("toggle", true)
	if err := b.Close(); err != nil {
		t.Errorf("Close on inert bridge: %v", err)
	}
}
