package email

import (
	"fmt"
	"html"
	"strings"
)

// renderBody оборачивает текст письма в общий HTML-каркас.
// Переводы строк превращаются в абзацы.
func renderBody(title, text string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">`)
	fmt.Fprintf(&b, `<h2 style="color:#1a1a2e;">%s</h2>`, html.EscapeString(title))
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			fmt.Fprintf(&b, `<p style="color:#444;line-height:1.5;">%s</p>`, html.EscapeString(p))
		}
	}
	b.WriteString(`<p style="color:#999;font-size:12px;">InkSpot</p></div>`)
	return b.String()
}
