package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI palette shared by all commands.
var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

// card renders content inside a rounded border box with a styled title.
func card(title, content string) string {
	body := primaryStyle.Bold(true).Render(title) + "\n\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderStyle.GetForeground()).
		Padding(0, 2).
		Render(body)
}

// successLine renders a check-marked confirmation message.
func successLine(msg string) string {
	return successStyle.Render("✓") + " " + msg
}

// renderTable lays out rows under a styled header with padded columns.
// The first column is left-aligned, the rest centered, mirroring the
// exported spreadsheets.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(primaryStyle.Bold(true).Render(padCell(h, widths[i], i == 0)))
	}
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(strings.Repeat("─", tableWidth(widths))))
	for _, row := range rows {
		sb.WriteString("\n")
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i < len(widths) {
				sb.WriteString(padCell(cell, widths[i], i == 0))
			}
		}
	}
	return sb.String()
}

// padCell pads a cell to width; left-aligned when leading, else centered.
func padCell(s string, width int, leading bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if leading {
		return s + strings.Repeat(" ", gap)
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func tableWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	return total
}

// pctCell renders a percentage or the em-dash placeholder for an
// undefined value (empty denominator).
func pctCell(pct int, ok bool) string {
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%d%%", pct)
}
