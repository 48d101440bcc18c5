package markdown

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/russross/blackfriday/v2"
)

const htmlFlags = blackfriday.SkipHTML | blackfriday.Safelink | blackfriday.NofollowLinks |
	blackfriday.NoreferrerLinks | blackfriday.HrefTargetBlank

// Render converts backend-supplied Markdown into HTML. Raw HTML in the
// source is dropped and links with unsafe schemes are not emitted as links.
func Render(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags})
	out := blackfriday.Run([]byte(s),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)
	return template.HTML(out)
}

// Truncate cuts s to at most n runes and appends "..." when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return strings.TrimRight(string(rs[:n]), " ") + "..."
}

// FuncMap exposes the helpers to html/template views.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": Render,
		"truncate": Truncate,
	}
}
