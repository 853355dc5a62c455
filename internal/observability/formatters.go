// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/shorts-optimizer/internal/export"
	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/types"
	"github.com/mattn/go-runewidth"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 72

// Printer handles formatted output for the optimize command
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, width: boxWidth}
}

// printBox prints a formatted box with a title and content.
// Long lines are wrapped rather than truncated so nothing is lost.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := p.width - 4
	border := strings.Repeat("─", p.width-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOptimizationResult outputs every section of the result in display order.
func (p *Printer) PrintOptimizationResult(result *types.OptimizationResult) {
	if result == nil {
		return
	}

	for i, info := range export.Sections() {
		var content string
		switch info.Name {
		case export.SectionScript:
			content = formatShots(result.RefinedScript)
		case export.SectionTitles:
			content = formatTitles(result.Titles)
		default:
			content, _ = export.Section(result, info.Name)
		}
		p.printBox(strings.ToUpper(info.Title), content)
		if i < len(export.Sections())-1 {
			fmt.Fprintln(p.out) //nolint:errcheck
		}
	}
}

// PrintError outputs a failure with its kind for diagnostics.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind:    %s\n", optimizer.KindOf(err)))
	sb.WriteString(fmt.Sprintf("Message: %s", optimizer.UserMessage(err)))
	if code := optimizer.StatusCode(err); code != 0 {
		sb.WriteString(fmt.Sprintf("\nStatus:  %d", code))
	}
	p.printBox("OPTIMIZATION FAILED", sb.String())
}

func formatShots(shots []types.Shot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d shots\n", len(shots)))
	for _, s := range shots {
		sb.WriteString(fmt.Sprintf("\n#%d\n", s.Number))
		sb.WriteString(fmt.Sprintf("  Visual: %s\n", s.Visual))
		sb.WriteString(fmt.Sprintf("  Audio:  %s\n", s.Audio))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatTitles(titles []string) string {
	lines := make([]string, 0, len(titles))
	for i, title := range titles {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, title))
	}
	return strings.Join(lines, "\n")
}

// pad right-fills s with spaces to width display cells
func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrap splits line on spaces into chunks of at most width display cells.
// Words longer than width are hard-split.
func wrap(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0
	for _, word := range strings.Fields(line) {
		for runewidth.StringWidth(word) > width {
			if currentWidth > 0 {
				lines = append(lines, current.String())
				current.Reset()
				currentWidth = 0
			}
			head := runewidth.Truncate(word, width, "")
			lines = append(lines, head)
			word = word[len(head):]
		}

		wordWidth := runewidth.StringWidth(word)
		switch {
		case wordWidth == 0:
			continue
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= width:
			current.WriteString(" ")
			current.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = wordWidth
		}
	}
	if currentWidth > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
