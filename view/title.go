package view

// DefaultTitle is the application title shown when nothing is selected.
const DefaultTitle = "הערוץ - הפלטפורמה הנוחה לצפייה בערוצים"

const titleSeparator = " | "

var helpSectionNames = map[string]string{
	"extension": "התקנת התוסף",
	"login":     "התחברות לערוצים",
	"images":    "הוספת תמונות",
	"usage":     "מדריך שימוש",
}

var customViewNames = map[string]string{
	"advertise": "פרסום",
	"contact":   "יצירת קשר",
}

// Title renders the window/status title for the current selection.
func (s *State) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.selected != nil:
		return s.selected.Name + titleSeparator + DefaultTitle
	case s.source == "help":
		section := helpSectionNames[s.section]
		if section == "" {
			section = s.section
		}
		if section == "" {
			return "עזרה" + titleSeparator + DefaultTitle
		}
		return "עזרה - " + section + titleSeparator + DefaultTitle
	case s.source != "":
		if name, ok := customViewNames[s.source]; ok {
			return name + titleSeparator + DefaultTitle
		}
		return s.source + titleSeparator + DefaultTitle
	}
	return DefaultTitle
}
