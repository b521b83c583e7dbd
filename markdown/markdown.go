// Package markdown renders the Markdown subset used by content bodies
// (headings, emphasis, links, lists, quotes, fenced code) as a templ
// component. Raw HTML in the source is escaped, never passed through.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	lines := strings.Split(md, "\n")
	var inList, inOrdered, inQuote, inCode bool

	closeBlocks := func() {
		if inList {
			buf.WriteString("</ul>\n")
			inList = false
		}
		if inOrdered {
			buf.WriteString("</ol>\n")
			inOrdered = false
		}
		if inQuote {
			buf.WriteString("</blockquote>\n")
			inQuote = false
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>\n")
				inCode = false
			} else {
				closeBlocks()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			closeBlocks()
		case strings.HasPrefix(trimmed, "#"):
			closeBlocks()
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' && level < 6 {
				level++
			}
			text := strings.TrimSpace(trimmed[level:])
			buf.WriteString("<h")
			buf.WriteByte(byte('0' + level))
			buf.WriteByte('>')
			buf.WriteString(inline(text))
			buf.WriteString("</h")
			buf.WriteByte(byte('0' + level))
			buf.WriteString(">\n")
		case strings.HasPrefix(trimmed, "> "):
			if !inQuote {
				closeBlocks()
				buf.WriteString("<blockquote>\n")
				inQuote = true
			}
			buf.WriteString("<p>")
			buf.WriteString(inline(strings.TrimPrefix(trimmed, "> ")))
			buf.WriteString("</p>\n")
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			if !inList {
				closeBlocks()
				buf.WriteString("<ul>\n")
				inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(inline(trimmed[2:]))
			buf.WriteString("</li>\n")
		case reOrdered.MatchString(trimmed):
			if !inOrdered {
				closeBlocks()
				buf.WriteString("<ol>\n")
				inOrdered = true
			}
			buf.WriteString("<li>")
			buf.WriteString(inline(reOrdered.ReplaceAllString(trimmed, "")))
			buf.WriteString("</li>\n")
		default:
			closeBlocks()
			buf.WriteString("<p>")
			buf.WriteString(inline(trimmed))
			buf.WriteString("</p>\n")
		}
	}
	if inCode {
		buf.WriteString("</code></pre>\n")
	}
	closeBlocks()
}

// inline escapes the text and applies span-level formatting.
func inline(s string) string {
	s = html.EscapeString(s)
	s = reInlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := reLink.FindStringSubmatch(m)
		href := parts[2]
		if !safeHref(href) {
			return parts[1]
		}
		return `<a href="` + href + `" rel="noopener">` + parts[1] + `</a>`
	})
	return s
}

func safeHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "/") ||
		strings.HasPrefix(lower, "#")
}
