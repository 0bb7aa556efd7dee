package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Bundled copies of the default catalogs, used when the network fetch
// fails so the sidebar is never empty.
var (
	//go:embed assets/sites.json
	bundledSites []byte
	//go:embed assets/available-sites.json
	bundledAvailable []byte
)

// FetchCatalogs loads the default category list and the quick-add
// suggestions. Network failures fall back to the bundled copies and are
// reported through the returned LoadState rather than an error: a missing
// catalog server degrades the experience, it does not break startup.
func FetchCatalogs(client *http.Client, sitesURL, availableURL string) ([]Category, []AvailableSite, LoadState) {
	state := Loaded

	var categories []Category
	if err := fetchJSON(client, sitesURL, &categories); err != nil {
		state = LoadError
		if err := json.Unmarshal(bundledSites, &categories); err != nil {
			categories = nil
		}
	}

	var available []AvailableSite
	if err := fetchJSON(client, availableURL, &available); err != nil {
		if err := json.Unmarshal(bundledAvailable, &available); err != nil {
			available = nil
		}
	}

	return categories, available, state
}

func fetchJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s: %w", url, err)
	}
	return nil
}
