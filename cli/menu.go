package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/icdeck/icdeck/pkg/catalog"
)

const bannerText = `
  ___ ____ ____  _____ ____ _  __
 |_ _/ ___|  _ \| ____/ ___| |/ /
  | | |   | | | |  _|| |   | ' /
  | | |___| |_| | |__| |___| . \
 |___\____|____/|_____\____|_|\_\
`

// ColorValues maps configured color names to terminal colors.
var ColorValues = map[string]lipgloss.Color{
	"red":    lipgloss.Color("9"),
	"green":  lipgloss.Color("10"),
	"yellow": lipgloss.Color("11"),
	"blue":   lipgloss.Color("12"),
	"purple": lipgloss.Color("13"),
	"cyan":   lipgloss.Color("14"),
	"white":  lipgloss.Color("15"),
}

func colorStyle(name string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := ColorValues[name]; ok {
		style = style.Foreground(c)
	}
	return style
}

// Banner renders the ASCII banner with a subtitle.
func Banner(color, subtitle string) string {
	style := colorStyle(color).Bold(true)
	var b strings.Builder
	b.WriteString(style.Render(strings.TrimPrefix(bannerText, "\n")))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(style.Render("  " + subtitle))
		b.WriteString("\n")
	}
	return b.String()
}

// MenuOptions controls RenderMenu.
type MenuOptions struct {
	QuitColor string
	// Width caps the table width; 0 lets it size to its content.
	Width int
}

// RenderMenu renders the project menu: one row per project in its color,
// unavailable projects marked, and the quit row last.
func RenderMenu(entries []catalog.Entry, opts MenuOptions) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	muted := lipgloss.NewStyle().Faint(true).Padding(0, 1)

	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		status := ""
		if !e.Available {
			status = "not available"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", e.Key), e.Name, status})
	}
	rows = append(rows, []string{catalog.QuitKey, "Quit", ""})

	t := table.New().
		Border(lipgloss.DoubleBorder()).
		Headers("#", "Project", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < len(entries) {
				if !entries[row].Available {
					return muted
				}
				return cell.Inherit(colorStyle(entries[row].Color))
			}
			return cell.Inherit(colorStyle(opts.QuitColor))
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}
	return t.String() + "\n"
}

// MenuPrompt is the question under the menu.
const MenuPrompt = "Enter the project index you want to navigate to, or 'q' to quit: "
