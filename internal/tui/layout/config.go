package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Tabs  TabsConfig
	Modal ModalConfig
	Text  TextConfig
}

// PaneConfig holds panel body dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for panel rows.
	// Accounts for: app padding (1) + tab bar (2) + message line (1) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum number of rows shown.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	// Accounts for app padding and the cursor gutter.
	ContentPadding int

	// IndentWidth is the number of columns per nesting level.
	IndentWidth int

	// URLMinWidth is the space a row needs left over before the card's
	// host is shown next to its title.
	URLMinWidth int
}

// TabsConfig holds tab bar configuration.
type TabsConfig struct {
	// MaxTitleWidth caps a single tab label.
	MaxTitleWidth int

	// Gap is the spacing between tab labels.
	Gap int
}

// ModalConfig holds overlay configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the help overlay width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum overlay width in characters.
	MinWidth int

	// MaxWidth is the maximum overlay width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width for the key column of the help overlay.
	HelpKeyColumnWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction: 7, // app padding (1) + tab bar (2) + message line (1) + help bar (3)
			MinHeight:       3,
			ContentPadding:  6,
			IndentWidth:     2,
			URLMinWidth:     12,
		},
		Tabs: TabsConfig{
			MaxTitleWidth: 20,
			Gap:           1,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            70,
			HelpKeyColumnWidth:  16,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
