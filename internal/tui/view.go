package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/tui/layout"
)

const (
	expandedMarker  = "▾ "
	collapsedMarker = "▸ "
	cardMarker      = "• "
	untitledFolder  = "(untitled)"
)

func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	var b strings.Builder
	switch {
	case a.dash == nil:
		b.WriteString(a.styles.Empty.Render("Loading bookmarks..."))
	case len(a.dash.Tabs) == 0:
		b.WriteString(a.styles.Empty.Render("No bookmark folders found"))
	default:
		b.WriteString(a.renderTabBar())
		b.WriteString("\n")
		b.WriteString(a.renderPanel())
	}

	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())

	return a.styles.App.Render(b.String())
}

// renderTabBar renders the window of tabs that fits the terminal width,
// keeping the active tab visible.
func (a App) renderTabBar() string {
	cfg := a.layoutConfig
	maxWidth := layout.CalculateItemWidth(a.width, cfg.Pane)

	labels := make([]string, len(a.dash.Tabs))
	widths := make([]int, len(a.dash.Tabs))
	for i, tab := range a.dash.Tabs {
		title, _ := layout.TruncateText(tab.Title, cfg.Tabs.MaxTitleWidth, cfg.Text)
		if i < 9 {
			title = fmt.Sprintf("%d %s", i+1, title)
		}
		style := a.styles.Tab
		if tab.Active {
			style = a.styles.TabActive
		}
		labels[i] = style.Render(title)
		widths[i] = lipgloss.Width(labels[i])
	}

	start, end := layout.CalculateVisibleTabs(widths, a.dash.ActiveTab(), maxWidth, cfg.Tabs.Gap)
	bar := strings.Join(labels[start:end], strings.Repeat(" ", cfg.Tabs.Gap))
	if start > 0 {
		bar = a.styles.URL.Render("‹ ") + bar
	}
	if end < len(labels) {
		bar += a.styles.URL.Render(" ›")
	}

	return a.styles.TabBar.Render(bar)
}

// renderPanel renders the active panel rows around the cursor.
func (a App) renderPanel() string {
	if len(a.rows) == 0 {
		return a.styles.Empty.Render("This folder is empty")
	}

	cfg := a.layoutConfig
	height := layout.CalculatePaneHeight(a.height, cfg.Pane)
	width := layout.CalculateItemWidth(a.width, cfg.Pane)
	offset := layout.CalculateViewportOffset(a.cursor, len(a.rows), height)

	end := offset + height
	if end > len(a.rows) {
		end = len(a.rows)
	}

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor, width))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one row. The selected row is rendered unstyled inside
// the selection background.
func (a App) renderRow(row dashboard.Row, selected bool, maxWidth int) string {
	if row.Kind == dashboard.RowSeparator {
		return ""
	}

	cfg := a.layoutConfig
	indentWidth := layout.CalculateIndent(row.Depth, cfg.Pane)
	indent := strings.Repeat(" ", indentWidth)
	avail := maxWidth - indentWidth

	var plain, styled string
	switch row.Kind {
	case dashboard.RowBlockHeader, dashboard.RowGroupHeader:
		marker := expandedMarker
		if row.Collapsed {
			marker = collapsedMarker
		}
		title := row.Title
		if title == "" {
			title = untitledFolder
		}
		plain, _ = layout.TruncateWithPrefixSuffix(title, avail, marker, "", cfg.Text)
		style := a.styles.Block
		if row.Kind == dashboard.RowGroupHeader {
			style = a.styles.Group
		}
		styled = style.Render(plain)

	case dashboard.RowCard:
		title, _ := layout.TruncateWithPrefixSuffix(row.Title, avail, cardMarker, "", cfg.Text)
		plain = title
		styled = a.styles.Card.Render(title)

		host := dashboard.Hostname(row.Card.URL)
		if host != row.Title {
			rest := avail - layout.VisibleLength(title) - 2
			if rest >= cfg.Pane.URLMinWidth {
				host, _ = layout.TruncateText(host, rest, cfg.Text)
				plain += "  " + host
				styled += "  " + a.styles.URL.Render(host)
			}
		}
	}

	if selected {
		return a.styles.ItemSelected.Render(indent + plain)
	}
	return a.styles.Item.Render(indent + styled)
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

func (a App) renderHelpOverlay() string {
	cfg := a.layoutConfig.Modal
	width := layout.CalculateModalWidth(a.width, cfg.DefaultWidthPercent, cfg)

	modalStyle := lipgloss.NewStyle().
		Padding(1, 2).
		Width(width)

	section := func(b *strings.Builder, title string, bindings ...Hint) {
		b.WriteString(a.styles.Title.Render(title) + "\n")
		for _, h := range bindings {
			b.WriteString(layout.PadRight(h.Key, cfg.HelpKeyColumnWidth) + h.Desc + "\n")
		}
		b.WriteString("\n")
	}

	var b strings.Builder
	section(&b, "nav",
		Hint{"j/k", "move"},
		Hint{"gg/G", "top/bottom"},
		Hint{"tab/L", "next tab"},
		Hint{"S-tab/H", "previous tab"},
		Hint{"1-9", "jump to tab"},
	)
	section(&b, "act",
		Hint{"enter/space", "collapse/expand folder, open card"},
		Hint{"o", "open in browser"},
		Hint{"Y", "yank url"},
	)
	b.WriteString(a.renderHintsInline([]Hint{{"?/esc", "close"}, {"q", "quit"}}))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(b.String()),
	)
}
