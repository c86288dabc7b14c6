package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlay draws over on top of base with its top left corner at x, y.
func overlay(base string, over string, x int, y int) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(over, "\n")

	for len(baseLines) < y+len(overLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range overLines {
		idx := y + i
		if idx < 0 {
			continue
		}

		baseLines[idx] = splice(baseLines[idx], line, x)
	}

	return strings.Join(baseLines, "\n")
}

// splice replaces the cells of line starting at x with over. Text under over is
// dropped but its escape sequences are not: zone markers that close a zone opened
// left of over are kept in front of it and markers opening a zone that continues
// right of over are kept behind it, so zones partly covered keep their extent.
func splice(line string, over string, x int) string {
	end := x + lipgloss.Width(over)

	var (
		left, right strings.Builder
		closing     []string
		opening     []string
		styling     []string
		state       byte
		col         int
	)

	open := map[string]bool{}

	for len(line) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(line, state, nil)
		state = newState
		line = line[n:]

		if width > 0 {
			switch {
			case col+width <= x:
				left.WriteString(seq)
			case col >= end:
				right.WriteString(seq)
			default:
				// Wide characters straddling an edge leave blanks behind.
				if col < x {
					left.WriteString(strings.Repeat(" ", x-col))
				}
				if col+width > end {
					right.WriteString(strings.Repeat(" ", col+width-end))
				}
			}

			col += width

			continue
		}

		switch {
		case col < x:
			left.WriteString(seq)
			if isZoneMarker(seq) {
				open[seq] = !open[seq]
			}
		case col >= end:
			right.WriteString(seq)
		case !isZoneMarker(seq):
			styling = append(styling, seq)
		case open[seq]:
			open[seq] = false
			closing = append(closing, seq)
		default:
			opening = toggleMarker(opening, seq)
		}
	}

	if col < x {
		left.WriteString(strings.Repeat(" ", x-col))
	}

	return left.String() + strings.Join(closing, "") + over +
		strings.Join(styling, "") + strings.Join(opening, "") + right.String()
}

// toggleMarker adds marker to pending, or removes it when pending already holds it.
func toggleMarker(pending []string, marker string) []string {
	for idx, seq := range pending {
		if seq == marker {
			return append(pending[:idx], pending[idx+1:]...)
		}
	}

	return append(pending, marker)
}

// isZoneMarker reports whether seq is a bubblezone marker of the form ESC [ digits z.
func isZoneMarker(seq string) bool {
	if len(seq) < 4 || !strings.HasPrefix(seq, "\x1b[") || seq[len(seq)-1] != 'z' {
		return false
	}

	for _, r := range seq[2 : len(seq)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// cropLeft removes the first n cells of every line.
func cropLeft(block string, n int) string {
	if n <= 0 {
		return block
	}

	lines := strings.Split(block, "\n")
	for idx, line := range lines {
		lines[idx] = ansi.TruncateLeft(line, n, "")
	}

	return strings.Join(lines, "\n")
}

// fitHeight pads or trims block to exactly height lines.
func fitHeight(block string, height int) string {
	if height <= 0 {
		return ""
	}

	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}

	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
