package extension

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"thechannel/catalog"
)

// Transport identifies how the agent is reached. Chosen once at
// construction and fixed for the bridge's lifetime; frames arriving on any
// other path are ignored.
type Transport int

const (
	TransportNone Transport = iota
	TransportPipe           // inherited fd, the embedded context
	TransportSocket         // unix socket, the standalone context
)

// BridgeFdEnv names the environment variable through which an embedding
// parent hands the bridge its end of a pipe.
const BridgeFdEnv = "THECHANNEL_BRIDGE_FD"

// DefaultResponseTimeout is the wait for a reply before the agent is
// treated as absent.
const DefaultResponseTimeout = 1500 * time.Millisecond

// Options configures bridge construction.
type Options struct {
	SocketPath      string // empty = runtime default
	ResponseTimeout time.Duration
}

// Bridge is the message channel to the extension agent.
type Bridge struct {
	transport Transport
	timeout   time.Duration
	sessionID string

	mu             sync.Mutex
	conn           io.ReadWriteCloser
	enc            *json.Encoder
	active         bool
	settingsWaiter chan *SettingsResponse
	domainsWaiter  chan []string
	unread         map[string]bool
	muted          map[string]bool

	onSettingsPush func(SettingsResponse)
	onChange       func()
}

// Dial detects the communication context and connects to the agent.
// An inherited pipe fd wins over the socket; with neither available the
// bridge is inert and every request resolves nil.
func Dial(opts Options) *Bridge {
	b := newBridge(opts)

	if fdStr := os.Getenv(BridgeFdEnv); fdStr != "" {
		fd, err := strconv.Atoi(fdStr)
		if err != nil {
			log.Printf("extension: bad %s value %q", BridgeFdEnv, fdStr)
			return b
		}
		f := os.NewFile(uintptr(fd), "thechannel-bridge")
		if f == nil {
			return b
		}
		b.attach(TransportPipe, f)
		return b
	}

	path := opts.SocketPath
	if path == "" {
		path = defaultSocketPath()
	}
	conn, err := net.DialTimeout("unix", path, 250*time.Millisecond)
	if err != nil {
		// No agent listening. The expected, common case.
		return b
	}
	if !peerAllowed(conn) {
		log.Printf("extension: rejecting agent socket with foreign peer")
		conn.Close()
		return b
	}
	b.attach(TransportSocket, conn)
	return b
}

// NewOverConn builds a bridge over an established connection. Used by
// tests and by embedders that manage the transport themselves.
func NewOverConn(conn io.ReadWriteCloser, opts Options) *Bridge {
	b := newBridge(opts)
	b.attach(TransportPipe, conn)
	return b
}

func newBridge(opts Options) *Bridge {
	timeout := opts.ResponseTimeout
	if timeout <= 0 {
		timeout = DefaultResponseTimeout
	}
	return &Bridge{
		transport: TransportNone,
		timeout:   timeout,
		sessionID: uuid.New().String(),
		unread:    make(map[string]bool),
		muted:     make(map[string]bool),
	}
}

func (b *Bridge) attach(t Transport, conn io.ReadWriteCloser) {
	b.transport = t
	b.conn = conn
	b.enc = json.NewEncoder(conn)
	go b.readLoop(conn)
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "thechannel", "extension.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "thechannel", "extension.sock")
}

// Transport returns the transport fixed at construction.
func (b *Bridge) Transport() Transport { return b.transport }

// Active reports whether the agent has confirmed itself this session.
// The flag latches true on the first EXTENSION_READY or SETTINGS_DATA
// frame and only a settings-request timeout resets it.
func (b *Bridge) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// OnSettingsPush registers the callback for agent-initiated settings
// frames (as opposed to replies the requester consumes).
func (b *Bridge) OnSettingsPush(fn func(SettingsResponse)) {
	b.mu.Lock()
	b.onSettingsPush = fn
	b.mu.Unlock()
}

// OnChange registers a callback fired after unread/muted state changes.
func (b *Bridge) OnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// HasUnread reports whether the agent flagged the domain as having unread
// activity.
func (b *Bridge) HasUnread(domain string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unread[domain]
}

// IsMuted reports whether unread tracking for the domain is muted.
func (b *Bridge) IsMuted(domain string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted[domain]
}

// RequestSettings sends APP_READY and waits for the agent's settings
// snapshot. Returns nil when no agent responds within the timeout, which
// also clears the active latch. A concurrent second call supersedes the
// first: the earlier caller resolves nil immediately rather than being
// orphaned.
func (b *Bridge) RequestSettings() *SettingsResponse {
	if b.transport == TransportNone {
		return nil
	}

	b.mu.Lock()
	if b.settingsWaiter != nil {
		close(b.settingsWaiter)
	}
	ch := make(chan *SettingsResponse, 1)
	b.settingsWaiter = ch
	b.mu.Unlock()

	payload, _ := json.Marshal(readyPayload{SessionID: b.sessionID})
	b.send(Message{Type: TypeAppReady, Payload: payload})

	select {
	case resp := <-ch:
		return resp
	case <-time.After(b.timeout):
		b.mu.Lock()
		if b.settingsWaiter == ch {
			b.settingsWaiter = nil
		}
		b.active = false
		b.mu.Unlock()
		return nil
	}
}

// RequestManagedDomains asks for the allow-list of domains the agent
// manages authentication for. Nil when inactive or on timeout. Same
// supersede semantics as RequestSettings.
func (b *Bridge) RequestManagedDomains() []string {
	b.mu.Lock()
	if !b.active {
		b.mu.Unlock()
		return nil
	}
	if b.domainsWaiter != nil {
		close(b.domainsWaiter)
	}
	ch := make(chan []string, 1)
	b.domainsWaiter = ch
	b.mu.Unlock()

	b.send(Message{Type: TypeGetManagedDomains})

	select {
	case domains := <-ch:
		return domains
	case <-time.After(b.timeout):
		b.mu.Lock()
		if b.domainsWaiter == ch {
			b.domainsWaiter = nil
		}
		b.mu.Unlock()
		return nil
	}
}

// ToggleMuteDomain flips unread muting for a domain. Fire-and-forget.
func (b *Bridge) ToggleMuteDomain(domain string) {
	if !b.Active() {
		return
	}
	payload, _ := json.Marshal(domainPayload{Domain: domain})
	b.send(Message{Type: TypeToggleMuteDomain, Payload: payload})
}

// RequestPermission asks the agent to prompt the user for host permission
// on the given domain. No acknowledgment is awaited; the return value only
// reports whether the request could be dispatched, so callers can fall back
// to their own prompt when the agent has gone inactive.
func (b *Bridge) RequestPermission(domain, name string) bool {
	if !b.Active() {
		log.Printf("extension: cannot request permission for %s, agent not active", domain)
		return false
	}
	payload, _ := json.Marshal(domainPayload{Domain: domain, Name: name})
	b.send(Message{Type: TypeRequestPermission, Payload: payload})
	return true
}

// UpdateSettings pushes the local settings snapshot to the agent.
// Fire-and-forget, skipped while the agent is inactive.
func (b *Bridge) UpdateSettings(settings catalog.Settings) {
	if !b.Active() {
		return
	}
	payload, _ := json.Marshal(settingsChangedPayload{
		Settings:     settings,
		LastModified: settings.LastModified,
	})
	b.send(Message{Type: TypeSettingsChanged, Payload: payload})
}

// NotifySidebarAction reports a sidebar action to the embedding parent.
// Sent even before activation: the parent may be listening without having
// announced itself.
func (b *Bridge) NotifySidebarAction(action string, data any) {
	payload, _ := json.Marshal(sidebarActionPayload{Action: action, Data: data})
	b.send(Message{Type: TypeSidebarAction, Payload: payload})
}

func (b *Bridge) send(msg Message) {
	if b.transport == TransportNone {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enc == nil {
		return
	}
	if err := b.enc.Encode(msg); err != nil {
		log.Printf("extension: send %s: %v", msg.Type, err)
	}
}

func (b *Bridge) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Printf("extension: bad frame: %v", err)
			continue
		}
		b.handle(msg)
	}
}

func (b *Bridge) handle(msg Message) {
	switch msg.Type {
	case TypeExtensionReady, TypeSettingsData:
		b.latchActive()
	}

	switch msg.Type {
	case TypeSettingsData:
		var resp SettingsResponse
		if err := json.Unmarshal(msg.Payload, &resp); err != nil {
			log.Printf("extension: bad settings payload: %v", err)
			return
		}
		b.mu.Lock()
		waiter := b.settingsWaiter
		b.settingsWaiter = nil
		push := b.onSettingsPush
		b.mu.Unlock()
		if waiter != nil {
			waiter <- &resp
		}
		if push != nil {
			push(resp)
		}

	case TypeManagedDomainsData:
		var domains []string
		if err := json.Unmarshal(msg.Payload, &domains); err != nil {
			log.Printf("extension: bad managed-domains payload: %v", err)
			return
		}
		b.mu.Lock()
		waiter := b.domainsWaiter
		b.domainsWaiter = nil
		b.mu.Unlock()
		if waiter != nil {
			waiter <- domains
		}

	case TypeUnreadStatusData, TypeUnreadStatusUpdate:
		var domains []string
		if err := json.Unmarshal(msg.Payload, &domains); err != nil {
			return
		}
		b.mu.Lock()
		b.unread = make(map[string]bool, len(domains))
		for _, d := range domains {
			b.unread[d] = true
		}
		change := b.onChange
		b.mu.Unlock()
		if change != nil {
			change()
		}

	case TypeMutedDomainsData:
		var domains []string
		if err := json.Unmarshal(msg.Payload, &domains); err != nil {
			return
		}
		b.mu.Lock()
		b.muted = make(map[string]bool, len(domains))
		for _, d := range domains {
			b.muted[d] = true
		}
		change := b.onChange
		b.mu.Unlock()
		if change != nil {
			change()
		}
	}
}

// latchActive flips the active flag once per session and kicks off the
// passive unread/muted queries.
func (b *Bridge) latchActive() {
	b.mu.Lock()
	already := b.active
	b.active = true
	b.mu.Unlock()
	if already {
		return
	}
	b.send(Message{Type: TypeGetUnreadStatus})
	b.send(Message{Type: TypeGetMutedDomains})
}

// Close shuts the transport down.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	b.enc = nil
	return err
}
