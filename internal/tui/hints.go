package tui

import (
	"strings"

	"github.com/nikbrunner/bmdash/internal/dashboard"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move tab:next enter:toggle"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for overlays: "? close  q quit"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, tab, etc.)
	Action []Hint // Row actions (toggle, open, yank)
	System []Hint // System hints (?, q)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeLoading:
		return HintSet{
			System: []Hint{{Key: "q", Desc: "quit"}},
		}
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal, depending on the row
// under the cursor.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab/S-tab", Desc: "switch tab"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	row, ok := a.SelectedRow()
	if !ok {
		return hints
	}
	switch row.Kind {
	case dashboard.RowBlockHeader, dashboard.RowGroupHeader:
		desc := "collapse"
		if row.Collapsed {
			desc = "expand"
		}
		hints.Action = []Hint{{Key: "enter", Desc: desc}}
	case dashboard.RowCard:
		hints.Action = []Hint{
			{Key: "enter/o", Desc: "open"},
			{Key: "Y", Desc: "yank url"},
		}
	}
	return hints
}
