package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"normal", 100, 50},       // 50% of 100
		{"enforces min", 60, 40},  // 30 < 40
		{"enforces max", 200, 70}, // 100 > 70
		{"tiny terminal", 30, 26}, // min 40 capped at width-4
		{"degenerate", 2, 1},      // never below 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, cfg.DefaultWidthPercent, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleTabs(t *testing.T) {
	widths := []int{10, 10, 10, 10, 10}

	tests := []struct {
		name      string
		active    int
		maxWidth  int
		wantStart int
		wantEnd   int
	}{
		{"all fit", 0, 100, 0, 5},
		{"first active", 0, 32, 0, 3},
		{"last active", 4, 32, 2, 5},
		{"middle active grows right first", 2, 21, 2, 4},
		{"too narrow still shows active", 3, 5, 3, 4},
		{"out of range active", 9, 21, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleTabs(widths, tt.active, tt.maxWidth, 1)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleTabs(active=%d, max=%d) = (%d, %d), want (%d, %d)",
					tt.active, tt.maxWidth, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	if start, end := CalculateVisibleTabs(nil, 0, 10, 1); start != 0 || end != 0 {
		t.Errorf("empty widths = (%d, %d), want (0, 0)", start, end)
	}
}
