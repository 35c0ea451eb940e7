package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[(/?)([a-z]+)\]`)

// MarkupParser renders text holding [tag]...[/tag] markup, e.g.
// "[error]failed[/error] [path]/data[/path]"
type MarkupParser struct {
	styles map[string]lipgloss.Style
	plain  bool
}

// NewMarkupParser creates a parser with the default styles. A plain parser
// drops the tags and keeps the text, for output that is not a terminal.
func NewMarkupParser(plain bool) *MarkupParser {
	return &MarkupParser{
		plain: plain,
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"command": CommandStyle,
			"path":    PathStyle,
			"muted":   MutedStyle,
			"batch":   BatchStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
		},
	}
}

// Render processes markup text. Unknown tags are left as they are.
func (p *MarkupParser) Render(text string) string {
	var out strings.Builder
	var stack []string
	last := 0

	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		closing := m[3] > m[2]
		tag := text[m[4]:m[5]]
		if _, known := p.styles[tag]; !known {
			continue
		}
		p.write(&out, text[last:m[0]], stack)
		last = m[1]
		if closing {
			if n := len(stack); n > 0 && stack[n-1] == tag {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, tag)
	}
	p.write(&out, text[last:], stack)
	return out.String()
}

// write renders a run of text with the innermost open tag's style
func (p *MarkupParser) write(out *strings.Builder, s string, stack []string) {
	if s == "" {
		return
	}
	if p.plain || len(stack) == 0 {
		out.WriteString(s)
		return
	}
	out.WriteString(p.styles[stack[len(stack)-1]].Render(s))
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}
