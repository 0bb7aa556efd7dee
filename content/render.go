package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"thechannel/render"
)

// Line is a rendered line of content with a display hint.
type Line struct {
	Text    string
	Heading bool
	Href    string
}

// RenderText converts an HTML fragment into terminal lines wrapped to
// width. Scripts and styles are dropped; headings and links keep enough
// structure for the pane to style them.
func RenderText(htmlContent string, width int) []Line {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return []Line{{Text: strings.TrimSpace(htmlContent)}}
	}

	doc.Find("script, style, noscript").Remove()

	var lines []Line
	emit := func(text string, heading bool, href string) {
		text = collapseSpace(text)
		if text == "" {
			return
		}
		for _, wrapped := range render.WrapText(text, width) {
			lines = append(lines, Line{Text: wrapped, Heading: heading, Href: href})
		}
	}

	blocks := doc.Find("h1, h2, h3, h4, p, li, a[href], div")
	if blocks.Length() == 0 {
		emit(doc.Text(), false, "")
		return lines
	}

	seen := map[string]bool{}
	blocks.Each(func(_ int, s *goquery.Selection) {
		// Leaf blocks only: a div wrapping paragraphs contributes
		// nothing itself.
		if goquery.NodeName(s) == "div" && s.Children().Length() > 0 {
			return
		}
		// Anchors inside a rendered block are part of that block's line;
		// only standalone anchors become lines of their own.
		if goquery.NodeName(s) == "a" && s.ParentsFiltered("h1, h2, h3, h4, p, li").Length() > 0 {
			return
		}
		text := collapseSpace(s.Text())
		if text == "" || seen[text] {
			return
		}
		seen[text] = true

		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4":
			if len(lines) > 0 {
				lines = append(lines, Line{})
			}
			emit(text, true, "")
		case "a":
			href, _ := s.Attr("href")
			emit(text, false, href)
		case "li":
			emit("• "+text, false, firstHref(s))
		default:
			emit(text, false, firstHref(s))
			lines = append(lines, Line{})
		}
	})

	// Trim trailing blank lines.
	for len(lines) > 0 && lines[len(lines)-1].Text == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// firstHref returns the target of the first link inside a block, so a
// paragraph containing a link renders as one underlined line instead of
// repeating the link text separately.
func firstHref(s *goquery.Selection) string {
	href, _ := s.Find("a[href]").First().Attr("href")
	return href
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
