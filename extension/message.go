// Package extension implements the message bridge to the optional
// TheChannel extension agent. The agent supplies settings, managed-domain
// and unread state over a line-framed JSON channel; its absence is the
// normal case and is never treated as an error.
package extension

import (
	"encoding/json"

	"thechannel/catalog"
)

// Wire message types exchanged with the extension agent.
const (
	TypeAppReady           = "THE_CHANNEL_APP_READY"
	TypeSettingsChanged    = "THE_CHANNEL_SETTINGS_CHANGED"
	TypeGetManagedDomains  = "THE_CHANNEL_GET_MANAGED_DOMAINS"
	TypeRequestPermission  = "THE_CHANNEL_REQUEST_PERMISSION"
	TypeExtensionReady     = "THE_CHANNEL_EXTENSION_READY"
	TypeSettingsData       = "THE_CHANNEL_SETTINGS_DATA"
	TypeManagedDomainsData = "THE_CHANNEL_MANAGED_DOMAINS_DATA"
	TypeGetUnreadStatus    = "THE_CHANNEL_GET_UNREAD_STATUS"
	TypeUnreadStatusData   = "THE_CHANNEL_UNREAD_STATUS_DATA"
	TypeUnreadStatusUpdate = "THE_CHANNEL_UNREAD_STATUS_UPDATE"
	TypeGetMutedDomains    = "THE_CHANNEL_GET_MUTED_DOMAINS"
	TypeMutedDomainsData   = "THE_CHANNEL_MUTED_DOMAINS_DATA"
	TypeToggleMuteDomain   = "THE_CHANNEL_TOGGLE_MUTE_DOMAIN"
	TypeSidebarAction      = "THE_CHANNEL_SIDEBAR_ACTION"
)

// Message is one newline-delimited JSON frame on the wire.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SettingsResponse is the payload of a SETTINGS_DATA frame.
type SettingsResponse struct {
	Settings     *catalog.Settings `json:"settings"`
	LastModified int64             `json:"lastModified"`
}

type readyPayload struct {
	SessionID string `json:"sessionId"`
}

type domainPayload struct {
	Domain string `json:"domain"`
	Name   string `json:"name,omitempty"`
}

type sidebarActionPayload struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

type settingsChangedPayload struct {
	Settings     catalog.Settings `json:"settings"`
	LastModified int64            `json:"lastModified"`
}
