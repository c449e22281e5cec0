package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#C05800")
	okColor      = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(okColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printValue(w io.Writer, key, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key), valueStyle.Render(fmt.Sprintf(format, args...)))
}

func printVerdict(w io.Writer, ok bool, pass, fail string) {
	if ok {
		fmt.Fprintln(w, okStyle.Render(pass))
		return
	}

	fmt.Fprintln(w, errorStyle.Render(fail))
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}

// table renders rows as right-aligned columns under headers.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			align := lipgloss.Right
			if i == 0 {
				align = lipgloss.Left
			}

			cells[i] = cellStyle.Width(widths[i] + 2).Align(align).Render(cell)
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
