package main

import (
	"fmt"

	"thechannel/dialog"
	"thechannel/extension"
	"thechannel/render"
)

// drawSidebar paints the channel list into the left column.
func drawSidebar(canvas *render.Canvas, rows []sidebarRow, cursor, innerWidth, height int, searchMode bool, searchInput string, showUnread bool, bridge *extension.Bridge) {
	y := 0
	if searchMode {
		canvas.WriteString(0, y, render.Truncate("/ "+searchInput+"█", innerWidth), render.Style{Bold: true})
		y++
	}

	// Keep the cursor on screen by scrolling the row window.
	visible := height - y
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}

	for i := offset; i < len(rows) && y < height; i++ {
		row := rows[i]
		style := render.Style{}
		if i == cursor {
			style.Reverse = true
		}

		switch {
		case row.isHeader:
			style.Bold = true
			canvas.WriteString(0, y, render.Truncate(row.category, innerWidth), style)
		case row.isQuick:
			label := "+ " + row.available.Name
			style.Dim = i != cursor
			canvas.WriteString(0, y, render.Truncate(label, innerWidth), style)
		default:
			label := "  " + row.site.Name
			if showUnread && bridge != nil {
				domain := dialog.Hostname(row.site.URL)
				if bridge.IsMuted(domain) {
					label += " ✕"
				} else if bridge.HasUnread(domain) {
					label += " ●"
				}
			}
			canvas.WriteString(0, y, render.Truncate(label, innerWidth), style)
		}
		y++
	}
}

// dialogTitles and dialogBodies carry the static copy per dialog kind.
var dialogTitles = map[dialog.Kind]string{
	dialog.AddSite:                "הוספת ערוץ",
	dialog.EditSite:               "עריכת ערוץ",
	dialog.ConfirmDelete:          "מחיקת ערוץ",
	dialog.LoginTutorial:          "התחברות לערוץ",
	dialog.Welcome:                "ברוכים הבאים לערוץ",
	dialog.GoogleLoginUnsupported: "התחברות עם גוגל אינה נתמכת",
	dialog.GrantPermission:        "נדרש אישור",
	dialog.InstallExtension:       "התקנת התוסף",
	dialog.CookiesBlocked:         "קובצי Cookie חסומים",
}

var dialogBodies = map[dialog.Kind][]string{
	dialog.Welcome: {
		"הערוץ מרכז את כל האתרים שלכם במקום אחד.",
		"הוסיפו ערוצים עם המקש a וחפשו עם /.",
	},
	dialog.LoginTutorial: {
		"הערוץ הזה תומך בהתחברות ישירה.",
		"התחברו פעם אחת בדפדפן והחיבור יישמר.",
	},
	dialog.GoogleLoginUnsupported: {
		"הערוץ הזה אינו תומך בהתחברות עם חשבון גוגל",
		"מתוך הערוץ. יש להתחבר באתר המקורי.",
	},
	dialog.GrantPermission: {
		"התוסף מבקש הרשאה לנהל את ההתחברות",
		"לערוץ הזה. אשרו בחלון הדפדפן.",
	},
	dialog.InstallExtension: {
		"התקנת התוסף מאפשרת התחברות לערוצים",
		"וסנכרון ההגדרות בין מכשירים.",
	},
	dialog.CookiesBlocked: {
		"הדפדפן חוסם קובצי Cookie של צד שלישי,",
		"ולכן התחברות לחלק מהערוצים לא תעבוד.",
	},
}

// drawDialog paints the visible dialog as a centered overlay box.
func drawDialog(canvas *render.Canvas, dialogs *dialog.Orchestrator, kind dialog.Kind, formLabels, formFields []string, formIdx, width, height int) {
	title := dialogTitles[kind]
	if input := dialogs.Input(); kind == dialog.Input && input != nil {
		title = input.Title
	}

	body := dialogBodies[kind]
	if kind == dialog.ConfirmDelete {
		body = []string{fmt.Sprintf("להסיר את \"%s\" מהרשימה?", dialogs.Site().Name)}
	}

	boxWidth := 56
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	boxHeight := len(body) + 2*len(formLabels) + 4
	if kind == dialog.Input || kind == dialog.AddSite || kind == dialog.EditSite {
		boxHeight = 2*len(formLabels) + 4
	}
	if boxHeight < 6 {
		boxHeight = 6
	}
	if boxHeight > height-2 {
		boxHeight = height - 2
	}

	startX := (width - boxWidth) / 2
	startY := (height - boxHeight) / 2

	for y := startY; y < startY+boxHeight; y++ {
		for x := startX; x < startX+boxWidth; x++ {
			canvas.Set(x, y, ' ', render.Style{})
		}
	}
	canvas.DrawBoxWithTitle(startX, startY, boxWidth, boxHeight, " "+title+" ", render.DoubleBox, render.Style{}, render.Style{Bold: true})

	y := startY + 2
	hint := " Enter=אישור  ESC=ביטול "

	switch kind {
	case dialog.AddSite, dialog.EditSite, dialog.Input:
		for i, label := range formLabels {
			canvas.WriteString(startX+2, y, label+":", render.Style{Dim: i != formIdx, Bold: i == formIdx})
			y++
			field := formFields[i]
			if i == formIdx {
				field += "█"
			}
			canvas.WriteString(startX+4, y, render.Truncate(field, boxWidth-6), render.Style{Underline: i == formIdx})
			y++
		}
		hint = " Enter=הבא/אישור  Tab=שדה  ESC=ביטול "

	case dialog.ConfirmDelete:
		for _, line := range body {
			canvas.WriteString(startX+2, y, render.Truncate(line, boxWidth-4), render.Style{})
			y++
		}
		hint = " y=מחיקה  n=ביטול "

	default:
		for _, line := range body {
			canvas.WriteString(startX+2, y, render.Truncate(line, boxWidth-4), render.Style{})
			y++
		}
		if _, dismissable := dialogNeverShowable[kind]; dismissable {
			hint = " Enter=סגירה  n=אל תציג שוב "
		} else {
			hint = " Enter=סגירה "
		}
	}

	hintX := startX + (boxWidth-render.StringWidth(hint))/2
	canvas.WriteString(hintX, startY+boxHeight-1, hint, render.Style{Dim: true})
}

// dialogNeverShowable mirrors the kinds the orchestrator can disable.
var dialogNeverShowable = map[dialog.Kind]struct{}{
	dialog.LoginTutorial:    {},
	dialog.Welcome:          {},
	dialog.GrantPermission:  {},
	dialog.InstallExtension: {},
	dialog.CookiesBlocked:   {},
}
