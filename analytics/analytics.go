// Package analytics records usage events in a local sqlite database.
// Everything here is best-effort: a broken database disables tracking
// for the session rather than bothering the user.
package analytics

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"thechannel/prefs"
)

// keyClientID stores the random per-install identifier.
const keyClientID = "analyticsClientId"

// ButtonLocation says where a tracked button lives.
type ButtonLocation string

const (
	LocationSidebar     ButtonLocation = "sidebar"
	LocationDialog      ButtonLocation = "dialog"
	LocationContextMenu ButtonLocation = "context_menu"
)

// AddMethod says how a channel was added.
type AddMethod string

const (
	MethodManual   AddMethod = "manual"
	MethodQuickAdd AddMethod = "quick_add"
	MethodFromURL  AddMethod = "from_url"
)

// Tracker appends events to the local store.
type Tracker struct {
	mu       sync.Mutex
	db       *sql.DB
	clientID string
	disabled bool
}

// Open creates (or opens) the analytics database at path. The client id
// is minted once and kept in p so installs are countable. Open never
// fails hard: on error it returns a disabled tracker.
func Open(path string, p *prefs.Store) *Tracker {
	t := &Tracker{clientID: clientID(p)}

	db, err := initDB(path)
	if err != nil {
		log.Printf("analytics: disabled: %v", err)
		t.disabled = true
		return t
	}
	t.db = db
	return t
}

func initDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id TEXT NOT NULL,
		name TEXT NOT NULL,
		detail TEXT,
		location TEXT,
		at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_name ON events(name);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

func clientID(p *prefs.Store) string {
	if p != nil {
		var id string
		if p.Load(keyClientID, &id) && id != "" {
			return id
		}
	}
	id := uuid.NewString()
	if p != nil {
		p.Save(keyClientID, id)
	}
	return id
}

// TrackButtonClick records a press on a notable button.
func (t *Tracker) TrackButtonClick(name string, loc ButtonLocation) {
	t.record("button_click_app", name, string(loc))
}

// TrackAddChannel records a channel being added.
func (t *Tracker) TrackAddChannel(channelName string, method AddMethod) {
	t.record("add_channel", channelName, string(method))
}

// TrackHeartbeat marks the user as still active while content has
// focus.
func (t *Tracker) TrackHeartbeat() {
	t.record("heartbeat", "", "")
}

// Close flushes and closes the database.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.db != nil {
		t.db.Close()
		t.db = nil
	}
}

func (t *Tracker) record(name, detail, location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disabled || t.db == nil {
		return
	}
	_, err := t.db.Exec(
		"INSERT INTO events (client_id, name, detail, location, at) VALUES (?, ?, ?, ?, ?)",
		t.clientID, name, detail, location, time.Now().UTC(),
	)
	if err != nil {
		log.Printf("analytics: disabled after write error: %v", err)
		t.disabled = true
	}
}
