package catalog

import (
	"time"

	"thechannel/prefs"
)

// LegacyCategoryName received the flat site list of the oldest storage
// generation during migration.
const LegacyCategoryName = "הערוצים שלי"

// MigrateSettings promotes whatever storage generation is found to the
// current userChannelSettings snapshot, deleting superseded keys. Invoked
// once at startup, before the store initializes. No-op when the current
// generation is already present.
func MigrateSettings(p *prefs.Store) {
	if p.Has(prefs.KeySettings) {
		return
	}

	var categories []Category
	migrated := false

	if p.Load(prefs.KeyLegacyCategories, &categories) && len(categories) > 0 {
		migrated = true
	} else {
		var sites []Site
		if p.Load(prefs.KeyLegacySites, &sites) && len(sites) > 0 {
			categories = []Category{{Name: LegacyCategoryName, Sites: sites}}
			migrated = true
		}
	}

	if !migrated {
		return
	}

	// The older generations kept these alongside the category list.
	var removed []string
	p.Load(prefs.KeyRemovedDefaultSites, &removed)
	collapsed := make(map[string]bool)
	p.Load(prefs.KeyCollapsedCategories, &collapsed)
	var sidebarCollapsed bool
	p.Load(prefs.KeySidebarCollapsed, &sidebarCollapsed)

	p.Save(prefs.KeySettings, Settings{
		Categories:          pruneEmpty(categories),
		SidebarCollapsed:    sidebarCollapsed,
		CollapsedCategories: collapsed,
		RemovedDefaultSites: removed,
		LastModified:        time.Now().UnixMilli(),
	})
	p.Delete(prefs.KeyLegacyCategories)
	p.Delete(prefs.KeyLegacySites)
}
