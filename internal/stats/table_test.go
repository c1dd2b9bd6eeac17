package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Rep", "Peak (m)", "Dir"}
	rows := [][]string{
		{"1*", "2.92", "->"},
		{"10", "-", "<-"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Rep Peak (m) Dir" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1*      2.92 -> " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10         - <- " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("高さ"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
}
