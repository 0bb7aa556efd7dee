// TheChannel is a terminal channel viewer: a sidebar of categorized site
// shortcuts next to a content pane, kept in sync with the browser
// extension agent when one is running.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"thechannel/analytics"
	"thechannel/catalog"
	"thechannel/config"
	"thechannel/content"
	"thechannel/dialog"
	"thechannel/extension"
	"thechannel/fetcher"
	"thechannel/prefs"
	"thechannel/render"
	"thechannel/toast"
	"thechannel/view"
)

func main() {
	deepLink := ""
	printMode := false
	initConfig := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-p", "--print":
			printMode = true
		case "--init-config":
			initConfig = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if deepLink == "" {
				deepLink = arg
			}
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if printMode {
		if err := runPrint(deepLink); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(deepLink); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`TheChannel - Terminal Channel Viewer

Usage: thechannel [options] [deep-link]

Options:
  -p, --print       Print the selected channel to stdout (one-shot mode)
  --init-config     Output default config (redirect to ~/.config/thechannel/config.toml)
  -h, --help        Show this help

Examples:
  thechannel                                Open with the last viewed channel
  thechannel "?name=Ynet&url=https://www.ynet.co.il"
  thechannel "?view=help&section=login"
  thechannel --init-config > ~/.config/thechannel/config.toml

Configuration:
  Config file: ~/.config/thechannel/config.toml`)
}

// openStores loads config and the preference store, running the storage
// migration before anyone reads settings.
func openStores() (*config.Config, *prefs.Store, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, "", fmt.Errorf("loading config: %w", err)
	}

	fetcher.Configure(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		ChromePath:     cfg.Fetcher.ChromePath,
	})

	dir, err := config.Dir()
	if err != nil {
		return nil, nil, "", fmt.Errorf("config dir: %w", err)
	}
	p := prefs.Open(filepath.Join(dir, "prefs.json"))
	catalog.MigrateSettings(p)
	return cfg, p, dir, nil
}

func runPrint(deepLink string) error {
	cfg, p, _, err := openStores()
	if err != nil {
		return err
	}

	cats, available, loadState := catalog.FetchCatalogs(fetcher.Client(), cfg.Catalog.DefaultSitesURL, cfg.Catalog.AvailableSitesURL)
	store := catalog.New(p)
	store.Initialize(cats, available, nil, loadState)

	views := view.New(p)
	if deepLink != "" {
		views.ApplyLink(view.ParseLink(deepLink), store.FindSite)
	} else if last := views.LastViewedURL(); last != "" {
		if site, category, ok := store.FindSite(last); ok {
			views.SelectSite(site, category)
		}
	}

	selected := views.Selected()
	if selected == nil {
		return fmt.Errorf("no channel selected; pass a deep link")
	}

	result, err := fetcher.Simple(view.AddUTM(selected.URL))
	if err != nil {
		return err
	}

	width := 80
	if w, _, werr := render.TerminalSize(); werr == nil {
		width = w
	}
	for _, line := range content.RenderText(result.HTML, width) {
		fmt.Println(line.Text)
	}
	return nil
}

// sidebarRow is one selectable line in the sidebar.
type sidebarRow struct {
	category  string
	site      catalog.Site
	available catalog.AvailableSite
	isHeader  bool
	isQuick   bool // quick-add suggestion while searching
}

func run(deepLink string) error {
	cfg, p, dir, err := openStores()
	if err != nil {
		return err
	}

	tracker := analytics.Open(filepath.Join(dir, "analytics.db"), p)
	defer tracker.Close()

	// Connect to the extension agent first: its settings snapshot feeds
	// the catalog merge.
	bridge := extension.Dial(extension.Options{
		SocketPath:      cfg.Extension.SocketPath,
		ResponseTimeout: time.Duration(cfg.Extension.ResponseTimeoutMs) * time.Millisecond,
	})
	defer bridge.Close()

	var extSettings *catalog.Settings
	if resp := bridge.RequestSettings(); resp != nil {
		extSettings = resp.Settings
	}

	cats, available, loadState := catalog.FetchCatalogs(fetcher.Client(), cfg.Catalog.DefaultSitesURL, cfg.Catalog.AvailableSitesURL)

	store := catalog.New(p)
	store.SetSyncFunc(bridge.UpdateSettings)
	bridge.OnSettingsPush(func(resp extension.SettingsResponse) {
		if resp.Settings != nil {
			store.ApplyExtensionSettings(*resp.Settings)
		}
	})
	store.Initialize(cats, available, extSettings, loadState)
	if cfg.Display.SidebarCollapsed && !store.SidebarCollapsed() {
		store.SetSidebarCollapsed(true)
	}

	views := view.New(p)
	dialogs := dialog.New(p)
	toasts := toast.NewManager()
	loader := content.NewLoader(cfg.Catalog.ContentBaseURL, fetcher.Client())

	// Set up terminal
	width, height, err := render.TerminalSize()
	if err != nil {
		return fmt.Errorf("detecting terminal: %w", err)
	}
	term, err := render.NewTerminal(os.Stdin)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	render.EnterAltScreen(os.Stdout)
	if err := term.EnterRawMode(); err != nil {
		render.ExitAltScreen(os.Stdout)
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		term.RestoreMode()
		render.ExitAltScreen(os.Stdout)
	}()

	canvas := render.NewCanvas(width, height)

	// Everything below except pane and focusedURL belongs to the input
	// goroutine alone. Background work (fetches, bridge pushes, dialog
	// plans, timers) never touches it: callbacks mark dirty and the input
	// loop repaints on its next read timeout (VTIME, 100ms).
	var dirty, resized atomic.Bool
	markDirty := func() { dirty.Store(true) }

	// Sidebar state
	cursor := 0
	searchMode := false
	searchInput := ""
	var rows []sidebarRow

	// Content pane state, shared with fetch goroutines.
	pane := &paneView{}
	paneTitle := view.DefaultTitle

	// focusedURL mirrors the cursor for the dialog focus-save hook, which
	// runs on the decision-tree goroutine.
	var focusMu sync.Mutex
	focusedURL := ""

	// Form state for AddSite/EditSite/Input dialogs
	var formLabels []string
	var formFields []string
	formIdx := 0

	buildRows := func() {
		rows = rows[:0]
		for _, cat := range store.FilterCategories(searchInput) {
			rows = append(rows, sidebarRow{category: cat.Name, isHeader: true})
			if store.IsCategoryCollapsed(cat.Name) && searchInput == "" {
				continue
			}
			for _, site := range cat.Sites {
				rows = append(rows, sidebarRow{category: cat.Name, site: site})
			}
		}
		if searchInput != "" {
			for _, avail := range store.AvailableMatches(searchInput) {
				rows = append(rows, sidebarRow{available: avail, isQuick: true})
			}
		}
		if cursor >= len(rows) {
			cursor = len(rows) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
	}
	buildRows()

	redraw := func() {
		canvas.Clear()

		paneLines, fetchedTitle, loading, scrollY := pane.snapshot()

		sidebarWidth := cfg.Display.SidebarWidth
		if store.SidebarCollapsed() {
			sidebarWidth = 0
		}
		if sidebarWidth > width/2 {
			sidebarWidth = width / 2
		}
		contentX := 0
		if sidebarWidth > 0 {
			canvas.DrawVLine(sidebarWidth-1, 0, height-1, '│', render.Style{Dim: true})
			contentX = sidebarWidth + 1
			drawSidebar(canvas, rows, cursor, sidebarWidth-2, height-1, searchMode, searchInput, cfg.Display.ShowUnreadMarks, bridge)
		}

		// Title line: the fetched page title wins for channels added
		// without a display name.
		title := paneTitle
		if fetchedTitle != "" {
			title = fetchedTitle
		}
		canvas.WriteString(contentX, 0, render.Truncate(title, width-contentX), render.Style{Bold: true})

		// Content pane
		paneHeight := height - 2
		for i := 0; i < paneHeight; i++ {
			idx := scrollY + i
			if idx >= len(paneLines) {
				break
			}
			line := paneLines[idx]
			style := render.Style{}
			if line.Heading {
				style.Bold = true
			}
			if line.Href != "" {
				style.Underline = true
			}
			canvas.WriteString(contentX, 1+i, render.Truncate(line.Text, width-contentX), style)
		}
		if loading {
			canvas.WriteString(contentX, 1, "טוען…", render.Style{Dim: true})
		}

		// Status line: toast wins over passive status
		if t := toasts.Current(); t != nil {
			style := render.Style{Reverse: true}
			if t.Kind == toast.Error {
				style.Bold = true
			}
			canvas.FillRow(0, height-1, width, ' ', style)
			canvas.WriteString(1, height-1, render.Truncate(t.Message, width-2), style)
		} else if store.State() == catalog.LoadError {
			status := "טעינת רשימת הערוצים נכשלה; מוצגת הרשימה המקומית"
			canvas.WriteString(0, height-1, render.Truncate(status, width), render.Style{Dim: true})
		}

		if kind := dialogs.Visible(); kind != dialog.None {
			canvas.DimAll()
			drawDialog(canvas, dialogs, kind, formLabels, formFields, formIdx, width, height)
		}

		canvas.RenderTo(os.Stdout)
	}

	// refresh applies pending resize/focus work and repaints. Input
	// goroutine only.
	refresh := func() {
		if resized.Swap(false) {
			if w, h, err := render.TerminalSize(); err == nil && (w != width || h != height) {
				width, height = w, h
				canvas = render.NewCanvas(width, height)
			}
		}
		dirty.Store(false)
		buildRows()

		focusMu.Lock()
		focusedURL = ""
		if cursor < len(rows) && !rows[cursor].isHeader && !rows[cursor].isQuick {
			focusedURL = rows[cursor].site.URL
		}
		focusMu.Unlock()

		redraw()
	}

	// Focus save/restore around dialogs: the save hook runs on the
	// decision-tree goroutine and reads the mirrored URL; the restore hook
	// only ever runs from Close on the input goroutine.
	dialogs.SetFocusHooks(
		func() string {
			focusMu.Lock()
			defer focusMu.Unlock()
			return focusedURL
		},
		func(url string) {
			for i, row := range rows {
				if !row.isHeader && row.site.URL == url {
					cursor = i
					break
				}
			}
		},
	)

	// Fetches run off the input loop; results land in the pane under its
	// lock and the dirty flag schedules the repaint.
	loadSite := func(site catalog.Site, useBrowser bool) {
		seq := pane.begin()
		wrapWidth := width - cfg.Display.SidebarWidth - 2
		go func() {
			var result *fetcher.FetchResult
			var err error
			target := view.AddUTM(site.URL)
			if useBrowser {
				result, err = fetcher.WithBrowser(target)
			} else {
				result, err = fetcher.Simple(target)
			}
			if err != nil {
				pane.fail(seq, "שגיאה בטעינת הערוץ: "+err.Error())
			} else {
				title := ""
				if site.Name == "" || site.Name == site.URL {
					title = fetcher.Title(result.HTML)
				}
				pane.finish(seq, content.RenderText(result.HTML, wrapWidth), title)
			}
			markDirty()
		}()
	}

	loadCustom := func(source string) {
		seq := pane.begin()
		wrapWidth := width - cfg.Display.SidebarWidth - 2
		go func() {
			err := loader.LoadFromSource(source)
			var lines []content.Line
			if frag := loader.Current(); frag != nil {
				lines = content.RenderText(frag.HTML, wrapWidth)
			}
			pane.finish(seq, lines, "")
			if err != nil {
				toasts.Show(err.Error(), toast.Error)
			}
			markDirty()
		}()
	}

	selectSite := func(site catalog.Site, category string) {
		views.SelectSite(site, category)
		bridge.NotifySidebarAction("select", map[string]string{"url": site.URL, "name": site.Name})
		loadSite(site, false)
	}

	showView := func(source string) {
		views.ShowCustom(source, "")
		loadCustom(source)
	}

	// Every selection change retitles the pane; every site selection runs
	// the onboarding decision tree off the input loop.
	views.Subscribe(func() { paneTitle = views.Title() })
	views.OnSelect(func(site catalog.Site) {
		go func() {
			dialogs.PlanForSite(site, bridge)
		}()
	})

	// Initial selection: deep link, then last viewed, then the first site.
	applied := false
	if deepLink != "" {
		if views.ApplyLink(view.ParseLink(deepLink), store.FindSite) {
			applied = true
			if sel := views.Selected(); sel != nil {
				loadSite(*sel, false)
			} else if src := views.CustomSource(); src != "" {
				loadCustom(src)
			}
		}
	}
	if !applied {
		if last := views.LastViewedURL(); last != "" {
			if site, category, ok := store.FindSite(last); ok {
				selectSite(site, category)
				applied = true
			}
		}
	}
	if !applied {
		for _, row := range rows {
			if !row.isHeader {
				selectSite(row.site, row.category)
				break
			}
		}
	}

	// Startup dialogs, including the slow cookie probe, stay off the
	// input loop.
	go func() {
		blocked := false
		if sel := views.Selected(); sel != nil && !dialogs.Disabled(dialog.CookiesBlocked) {
			blocked = fetcher.ThirdPartyCookiesBlocked(sel.URL)
		}
		dialogs.PlanStartup(blocked)
	}()

	// Background state changes only schedule a repaint; the input loop
	// picks them up on its next tick.
	store.Subscribe(markDirty)
	bridge.OnChange(markDirty)
	toasts.Subscribe(func(*toast.Toast) { markDirty() })
	dialogs.OnChange(markDirty)

	// Heartbeat while a channel is on screen.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()
	go func() {
		for range heartbeat.C {
			if views.Selected() != nil {
				tracker.TrackHeartbeat()
			}
		}
	}()

	// Handle terminal resize
	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	go func() {
		for range resizeCh {
			resized.Store(true)
		}
	}()

	refresh()

	key := func(input byte, binding string) bool {
		return config.MatchSingle(input, binding)
	}
	kb := cfg.Keybindings

	currentSiteRow := func() (sidebarRow, bool) {
		if cursor < len(rows) && !rows[cursor].isHeader && !rows[cursor].isQuick {
			return rows[cursor], true
		}
		return sidebarRow{}, false
	}

	openForm := func(labels []string, prefill []string) {
		formLabels = labels
		formFields = make([]string, len(labels))
		copy(formFields, prefill)
		formIdx = 0
	}

	submitForm := func(kind dialog.Kind) {
		switch kind {
		case dialog.AddSite:
			name := strings.TrimSpace(formFields[0])
			url := strings.TrimSpace(formFields[1])
			category := strings.TrimSpace(formFields[2])
			if url == "" {
				toasts.Show("נא להזין כתובת", toast.Error)
				return
			}
			if name == "" {
				name = url
			}
			if category == "" {
				category = catalog.DefaultCategoryName
			}
			site := catalog.Site{Name: name, URL: url}
			if !store.AddSite(site, category) {
				toasts.Show(catalog.DuplicateSiteMessage, toast.Error)
				return
			}
			tracker.TrackAddChannel(name, analytics.MethodManual)
			dialogs.Close(kind, false)
			toasts.Show("הערוץ נוסף", toast.Success)
			selectSite(site, category)

		case dialog.EditSite:
			site := dialogs.Site()
			from := dialogs.Category()
			updated := catalog.Site{
				Name:                 strings.TrimSpace(formFields[0]),
				URL:                  strings.TrimSpace(formFields[1]),
				GoogleLoginSupported: site.GoogleLoginSupported,
			}
			if updated.URL == "" {
				toasts.Show("נא להזין כתובת", toast.Error)
				return
			}
			if !store.UpdateSite(site.URL, updated) {
				toasts.Show(catalog.DuplicateSiteMessage, toast.Error)
				return
			}
			if to := strings.TrimSpace(formFields[2]); to != "" && to != from {
				store.MoveSiteToCategory(updated, from, to)
			}
			dialogs.Close(kind, false)

		case dialog.Input:
			dialogs.SubmitInput(strings.TrimSpace(formFields[0]))
		}
	}

	// Input loop. Reads wake every 100ms (VTIME) even without input, so
	// dirty state from background goroutines is repainted promptly.
	buf := make([]byte, 8)
	for {
		n, _ := os.Stdin.Read(buf)
		if n == 0 {
			if dirty.Load() || resized.Load() {
				refresh()
			}
			continue
		}

		// A visible dialog owns the keyboard.
		if kind := dialogs.Visible(); kind != dialog.None {
			switch kind {
			case dialog.AddSite, dialog.EditSite, dialog.Input:
				switch {
				case buf[0] == 27 && n == 1: // Escape
					dialogs.Close(kind, false)
				case buf[0] == 13 || buf[0] == 10: // Enter - next field / submit
					if formIdx < len(formFields)-1 {
						formIdx++
					} else {
						submitForm(kind)
					}
				case buf[0] == 9: // Tab - cycle fields
					if len(formFields) > 0 {
						formIdx = (formIdx + 1) % len(formFields)
					}
				case buf[0] == 127 || buf[0] == 8: // Backspace
					if f := formFields[formIdx]; len(f) > 0 {
						formFields[formIdx] = trimLastRune(f)
					}
				case buf[0] >= 32:
					formFields[formIdx] += string(buf[:n])
				}

			case dialog.ConfirmDelete:
				switch {
				case buf[0] == 13 || buf[0] == 'y':
					store.RemoveSite(dialogs.Site())
					tracker.TrackButtonClick("delete_channel", analytics.LocationDialog)
					dialogs.Close(kind, false)
					toasts.Show("הערוץ הוסר", toast.Success)
				case buf[0] == 27 || buf[0] == 'n':
					dialogs.Close(kind, false)
				}

			default:
				// Informational dialogs: Enter/Escape dismiss, 'n' means
				// never show again where the dialog supports it.
				switch {
				case buf[0] == 'n':
					dialogs.Close(kind, true)
				case buf[0] == 13 || buf[0] == 10 || buf[0] == 27 || buf[0] == ' ':
					dialogs.Close(kind, false)
				}
			}
			refresh()
			continue
		}

		// Search mode: typing filters the sidebar live.
		if searchMode {
			switch {
			case buf[0] == 27 && n == 1: // Escape
				searchMode = false
				searchInput = ""
			case buf[0] == 13 || buf[0] == 10: // Enter - act on highlighted row
				searchMode = false
				if cursor < len(rows) {
					row := rows[cursor]
					switch {
					case row.isQuick:
						if store.AddAvailable(row.available) {
							tracker.TrackAddChannel(row.available.Name, analytics.MethodQuickAdd)
							toasts.Show("הערוץ נוסף", toast.Success)
						} else {
							toasts.Show(catalog.DuplicateSiteMessage, toast.Error)
						}
					case !row.isHeader:
						selectSite(row.site, row.category)
					}
				}
				searchInput = ""
			case buf[0] == 127 || buf[0] == 8: // Backspace
				if len(searchInput) > 0 {
					searchInput = trimLastRune(searchInput)
				}
			case buf[0] == 27 && n >= 3 && buf[1] == '[' && buf[2] == 'A':
				if cursor > 0 {
					cursor--
				}
			case buf[0] == 9, buf[0] == 27 && n >= 3 && buf[1] == '[' && buf[2] == 'B':
				if cursor < len(rows)-1 {
					cursor++
				}
			case buf[0] >= 32:
				searchInput += string(buf[:n])
			}
			refresh()
			continue
		}

		// Arrow keys behave like the up/down bindings
		if buf[0] == 27 && n >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				buf[0] = kb.Up[0]
			case 'B':
				buf[0] = kb.Down[0]
			}
		}

		switch {
		case key(buf[0], kb.Quit):
			return nil

		case key(buf[0], kb.Down):
			if cursor < len(rows)-1 {
				cursor++
			}

		case key(buf[0], kb.Up):
			if cursor > 0 {
				cursor--
			}

		case key(buf[0], kb.Select):
			if cursor < len(rows) {
				row := rows[cursor]
				if row.isHeader {
					store.ToggleCategoryCollapsed(row.category)
				} else if !row.isQuick {
					selectSite(row.site, row.category)
				}
			}

		case key(buf[0], kb.Search):
			searchMode = true
			searchInput = ""

		case key(buf[0], kb.Collapse):
			if cursor < len(rows) {
				store.ToggleCategoryCollapsed(rows[cursor].category)
			}

		case key(buf[0], kb.AddSite):
			tracker.TrackButtonClick("add_channel_dialog_open", analytics.LocationSidebar)
			openForm([]string{"שם הערוץ", "כתובת (URL)", "קטגוריה"}, nil)
			dialogs.OpenAddSite()

		case key(buf[0], kb.EditSite):
			if row, ok := currentSiteRow(); ok && !store.IsDefaultSite(row.site.URL) {
				openForm([]string{"שם הערוץ", "כתובת (URL)", "קטגוריה"},
					[]string{row.site.Name, row.site.URL, row.category})
				dialogs.OpenEditSite(row.site, row.category)
			}

		case key(buf[0], kb.DeleteSite):
			if row, ok := currentSiteRow(); ok {
				dialogs.OpenConfirmDelete(row.site)
			}

		case key(buf[0], kb.MoveUp):
			if row, ok := currentSiteRow(); ok {
				store.MoveSite(row.site, row.category, catalog.Up)
				if cursor > 0 {
					cursor--
				}
			}

		case key(buf[0], kb.MoveDown):
			if row, ok := currentSiteRow(); ok {
				store.MoveSite(row.site, row.category, catalog.Down)
				if cursor < len(rows)-1 {
					cursor++
				}
			}

		case key(buf[0], kb.Recategorize):
			if row, ok := currentSiteRow(); ok {
				site, from := row.site, row.category
				openForm([]string{"קטגוריה חדשה"}, []string{from})
				dialogs.OpenInput(dialog.InputConfig{
					Title: "העברת ערוץ",
					Label: "קטגוריה חדשה",
					Callback: func(value string) {
						if value != from {
							store.MoveSiteToCategory(site, from, value)
						}
					},
				})
			}

		case key(buf[0], kb.MuteSite):
			if row, ok := currentSiteRow(); ok && bridge.Active() {
				bridge.ToggleMuteDomain(dialog.Hostname(row.site.URL))
			}

		case key(buf[0], kb.ToggleSidebar):
			store.SetSidebarCollapsed(!store.SidebarCollapsed())
			bridge.NotifySidebarAction("toggle", store.SidebarCollapsed())

		case key(buf[0], kb.Help):
			showView("help")

		case key(buf[0], kb.Advertise):
			tracker.TrackButtonClick("advertise_view", analytics.LocationSidebar)
			showView("advertise")

		case key(buf[0], kb.Contact):
			showView("contact")

		case key(buf[0], kb.CopyLink):
			if link := views.CurrentLink().Encode(); link != "" {
				full := "https://haharuts.co.il/?" + link
				if err := copyToClipboard(full); err == nil {
					toasts.Show("הקישור הועתק", toast.Success)
				} else {
					toasts.Show(full, toast.Info)
				}
			}

		case key(buf[0], kb.Refresh):
			if sel := views.Selected(); sel != nil {
				loadSite(*sel, false)
			} else if src := views.CustomSource(); src != "" {
				loadCustom(src)
			}

		case key(buf[0], kb.BrowserFetch):
			if sel := views.Selected(); sel != nil {
				loadSite(*sel, true)
			}

		case buf[0] == 'G': // bottom of content
			pane.scrollToEnd(height - 2)

		case buf[0] == 'd': // half page down
			pane.scrollBy((height-2)/2, height-2)

		case buf[0] == 'u': // half page up
			pane.scrollBy(-(height-2)/2, height-2)
		}
		refresh()
	}
}

// trimLastRune removes the final rune of s, for backspace over UTF-8.
func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func copyToClipboard(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		}
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
