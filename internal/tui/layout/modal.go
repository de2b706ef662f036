package layout

// CalculateModalWidth computes responsive overlay width based on percentage of terminal width.
// Uses widthPercent of terminal width, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg ModalConfig) int {
	width := terminalWidth * widthPercent / 100

	// Apply min/max constraints
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateVisibleTabs picks the window of tab labels that fits in maxWidth
// while keeping the active tab visible. widths are the rendered label
// widths; labels are separated by gap columns. Returns (start, end) where
// tabs[start:end] should be displayed.
func CalculateVisibleTabs(widths []int, active, maxWidth, gap int) (start, end int) {
	n := len(widths)
	if n == 0 {
		return 0, 0
	}
	if active < 0 || active >= n {
		active = 0
	}

	start, end = active, active+1
	used := widths[active]

	// Grow to the right first, then to the left.
	for end < n && used+gap+widths[end] <= maxWidth {
		used += gap + widths[end]
		end++
	}
	for start > 0 && used+gap+widths[start-1] <= maxWidth {
		used += gap + widths[start-1]
		start--
	}

	return start, end
}
