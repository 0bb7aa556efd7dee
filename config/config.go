// Package config provides configuration loading for TheChannel using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Display settings
type Display struct {
	SidebarWidth     int  `toml:"sidebarWidth"`
	SidebarCollapsed bool `toml:"sidebarCollapsed"` // start with the sidebar collapsed
	ShowUnreadMarks  bool `toml:"showUnreadMarks"`  // unread markers from the extension agent
}

// Catalog source settings
type Catalog struct {
	DefaultSitesURL   string `toml:"defaultSitesUrl"`
	AvailableSitesURL string `toml:"availableSitesUrl"`
	ContentBaseURL    string `toml:"contentBaseUrl"` // base for custom content fragments
}

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
}

// Extension agent settings
type Extension struct {
	SocketPath        string `toml:"socketPath"`        // empty = default runtime path
	ResponseTimeoutMs int    `toml:"responseTimeoutMs"` // reply wait before treating the agent as absent
}

// Keybindings configuration
type Keybindings struct {
	// Sidebar navigation
	Quit     string `toml:"quit"`
	Down     string `toml:"down"`
	Up       string `toml:"up"`
	Select   string `toml:"select"`
	Search   string `toml:"search"`
	Collapse string `toml:"collapse"` // collapse/expand the highlighted category

	// Catalog mutations
	AddSite      string `toml:"addSite"`
	DeleteSite   string `toml:"deleteSite"`
	EditSite     string `toml:"editSite"`
	MoveUp       string `toml:"moveUp"`
	MoveDown     string `toml:"moveDown"`
	Recategorize string `toml:"recategorize"`
	MuteSite     string `toml:"muteSite"` // toggle unread muting via the extension agent

	// Views
	ToggleSidebar string `toml:"toggleSidebar"`
	Help          string `toml:"help"`
	Advertise     string `toml:"advertise"`
	Contact       string `toml:"contact"`
	CopyLink      string `toml:"copyLink"`
	Refresh       string `toml:"refresh"`
	BrowserFetch  string `toml:"browserFetch"` // re-fetch current site with the headless browser
}

// Config is the main configuration struct
type Config struct {
	Display     Display     `toml:"display"`
	Catalog     Catalog     `toml:"catalog"`
	Fetcher     Fetcher     `toml:"fetcher"`
	Extension   Extension   `toml:"extension"`
	Keybindings Keybindings `toml:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Display: Display{
			SidebarWidth:     32,
			SidebarCollapsed: false,
			ShowUnreadMarks:  true,
		},
		Catalog: Catalog{
			DefaultSitesURL:   "https://haharuts.co.il/assets/sites.json",
			AvailableSitesURL: "https://haharuts.co.il/assets/available-sites.json",
			ContentBaseURL:    "https://haharuts.co.il/ads",
		},
		Fetcher: Fetcher{
			UserAgent:      "TheChannel/1.0 (Terminal Channel Viewer)",
			TimeoutSeconds: 30,
			ChromePath:     "",
		},
		Extension: Extension{
			SocketPath:        "",
			ResponseTimeoutMs: 1500,
		},
		Keybindings: Keybindings{
			Quit:          "q",
			Down:          "j",
			Up:            "k",
			Select:        "\r",
			Search:        "/",
			Collapse:      "z",
			AddSite:       "a",
			DeleteSite:    "x",
			EditSite:      "e",
			MoveUp:        "K",
			MoveDown:      "J",
			Recategorize:  "c",
			MuteSite:      "m",
			ToggleSidebar: "b",
			Help:          "?",
			Advertise:     "V",
			Contact:       "@",
			CopyLink:      "y",
			Refresh:       "r",
			BrowserFetch:  "R",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "thechannel"), nil
}

// Dir returns the configuration directory, creating it if needed.
func Dir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	var user Config
	if _, err := toml.DecodeFile(configPath, &user); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
	}

	return merge(cfg, &user), nil
}

// merge layers user config on top of defaults. Only non-zero values from
// the user config override.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Display.SidebarWidth != 0 {
		result.Display.SidebarWidth = user.Display.SidebarWidth
	}
	if user.Display.SidebarCollapsed {
		result.Display.SidebarCollapsed = true
	}

	if user.Catalog.DefaultSitesURL != "" {
		result.Catalog.DefaultSitesURL = user.Catalog.DefaultSitesURL
	}
	if user.Catalog.AvailableSitesURL != "" {
		result.Catalog.AvailableSitesURL = user.Catalog.AvailableSitesURL
	}
	if user.Catalog.ContentBaseURL != "" {
		result.Catalog.ContentBaseURL = user.Catalog.ContentBaseURL
	}

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}

	if user.Extension.SocketPath != "" {
		result.Extension.SocketPath = user.Extension.SocketPath
	}
	if user.Extension.ResponseTimeoutMs != 0 {
		result.Extension.ResponseTimeoutMs = user.Extension.ResponseTimeoutMs
	}

	mergeKeybinding(&result.Keybindings.Quit, user.Keybindings.Quit)
	mergeKeybinding(&result.Keybindings.Down, user.Keybindings.Down)
	mergeKeybinding(&result.Keybindings.Up, user.Keybindings.Up)
	mergeKeybinding(&result.Keybindings.Select, user.Keybindings.Select)
	mergeKeybinding(&result.Keybindings.Search, user.Keybindings.Search)
	mergeKeybinding(&result.Keybindings.Collapse, user.Keybindings.Collapse)
	mergeKeybinding(&result.Keybindings.AddSite, user.Keybindings.AddSite)
	mergeKeybinding(&result.Keybindings.DeleteSite, user.Keybindings.DeleteSite)
	mergeKeybinding(&result.Keybindings.EditSite, user.Keybindings.EditSite)
	mergeKeybinding(&result.Keybindings.MoveUp, user.Keybindings.MoveUp)
	mergeKeybinding(&result.Keybindings.MoveDown, user.Keybindings.MoveDown)
	mergeKeybinding(&result.Keybindings.Recategorize, user.Keybindings.Recategorize)
	mergeKeybinding(&result.Keybindings.MuteSite, user.Keybindings.MuteSite)
	mergeKeybinding(&result.Keybindings.ToggleSidebar, user.Keybindings.ToggleSidebar)
	mergeKeybinding(&result.Keybindings.Help, user.Keybindings.Help)
	mergeKeybinding(&result.Keybindings.Advertise, user.Keybindings.Advertise)
	mergeKeybinding(&result.Keybindings.Contact, user.Keybindings.Contact)
	mergeKeybinding(&result.Keybindings.CopyLink, user.Keybindings.CopyLink)
	mergeKeybinding(&result.Keybindings.Refresh, user.Keybindings.Refresh)
	mergeKeybinding(&result.Keybindings.BrowserFetch, user.Keybindings.BrowserFetch)

	return &result
}

func mergeKeybinding(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// MatchSingle is a simple helper for single-char bindings.
func MatchSingle(input byte, binding string) bool {
	return len(binding) == 1 && input == binding[0]
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# TheChannel configuration
# Save to ~/.config/thechannel/config.toml and customize
# Only include settings you want to change from defaults

# Display settings
[display]
sidebarWidth = 32             # Sidebar width in terminal columns
sidebarCollapsed = false      # Start with the sidebar collapsed
showUnreadMarks = true        # Show unread markers supplied by the extension agent

# Catalog sources
[catalog]
defaultSitesUrl = "https://haharuts.co.il/assets/sites.json"
availableSitesUrl = "https://haharuts.co.il/assets/available-sites.json"
contentBaseUrl = "https://haharuts.co.il/ads"

# HTTP fetching settings
[fetcher]
userAgent = "TheChannel/1.0 (Terminal Channel Viewer)"
timeoutSeconds = 30
chromePath = ""               # Path to Chrome/Chromium for JS rendering (empty = auto-detect)

# Extension agent settings
[extension]
socketPath = ""               # Unix socket of the extension agent (empty = runtime default)
responseTimeoutMs = 1500      # Reply wait before treating the agent as absent

# Keybindings - customize your keys here!
[keybindings]
quit = "q"
down = "j"
up = "k"
select = "\r"
search = "/"
collapse = "z"                # Collapse/expand the highlighted category

addSite = "a"
deleteSite = "x"
editSite = "e"
moveUp = "K"
moveDown = "J"
recategorize = "c"
muteSite = "m"                # Toggle unread muting via the extension agent

toggleSidebar = "b"
help = "?"
advertise = "V"
contact = "@"
copyLink = "y"
refresh = "r"
browserFetch = "R"            # Re-fetch the current site with the headless browser
`
}
