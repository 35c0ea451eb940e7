package style

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/tools"
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer formats user facing messages, styled or plain
type Printer struct {
	markup *MarkupParser
	plain  bool
}

// NewPrinter returns a printer that styles output only when f is a terminal
func NewPrinter(f *os.File) *Printer {
	return NewPlainPrinter(!IsTerminal(f))
}

// NewPlainPrinter returns a printer with styling forced on or off
func NewPlainPrinter(plain bool) *Printer {
	return &Printer{markup: NewMarkupParser(plain), plain: plain}
}

// Sprint renders markup
func (p *Printer) Sprint(text string) string {
	return p.markup.Render(text)
}

// Error renders err for stderr. Coded errors already carry their code.
func (p *Printer) Error(err error) string {
	if err == nil {
		return ""
	}
	return p.Sprint("[error]Error:[/error] " + err.Error())
}

// ToolTable renders the registered tools as a table
func (p *Printer) ToolTable(specs []tools.Spec) (string, error) {
	data := pterm.TableData{{"Tool", "Label", "Suffix", "Dispatch", "Description"}}
	for _, s := range specs {
		dispatch := string(s.Dispatch)
		if s.Dispatch == tools.DispatchBatch && !p.plain {
			dispatch = BatchStyle.Render(dispatch)
		}
		data = append(data, []string{s.Name, s.Label, s.DefaultSuffix, dispatch, s.Description})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if p.plain {
		table = table.WithHeaderStyle(pterm.NewStyle()).WithSeparator("  ")
	}
	out, err := table.Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render tool table")
	}
	return strings.TrimRight(out, "\n"), nil
}
