package tui

import (
	"fmt"
	"strings"

	"github.com/jonathan/shorts-optimizer/internal/export"
)

// View implements tea.Model interface
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("SHORTS PRO"))
	b.WriteString("\n")

	if m.state.Result != nil {
		b.WriteString(m.results.View())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("1-4 copy section • ↑/↓ scroll • ctrl+r new script • q quit"))
	} else {
		b.WriteString(InfoStyle.Render("Ready to turn your script into a viral hit? Paste it below."))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")

		if m.state.Error != "" {
			b.WriteString(ErrorStyle.Render(m.state.Error))
			b.WriteString("\n\n")
		}

		if m.state.IsOptimizing {
			b.WriteString(StatusStyle.Render("CRAFTING..."))
		} else {
			b.WriteString(InfoStyle.Render("Optimized for 60-90 seconds retention • ctrl+s optimize • ctrl+c quit"))
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.notice))
	}
	b.WriteString("\n")
	return b.String()
}

// renderSections lays out every result section with its copy key
func (m Model) renderSections() string {
	if m.state.Result == nil {
		return ""
	}

	width := m.width - 2
	if width < 20 {
		width = 78
	}

	var blocks []string
	for i, info := range export.Sections() {
		text, err := export.Section(m.state.Result, info.Name)
		if err != nil {
			continue
		}
		header := SectionTitleStyle.Render(fmt.Sprintf("%d  %s", i+1, info.Title))
		blocks = append(blocks, SectionStyle.Width(width).Render(header+"\n\n"+text))
	}
	return strings.Join(blocks, "\n")
}
