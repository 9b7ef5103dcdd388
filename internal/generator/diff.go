package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures unified diff output.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines shown around each
	// change. Default 3.
	ContextLines int

	// Color renders added/removed lines with lipgloss styles for
	// terminal display. Plain output is used in reports.
	Color bool

	// Width truncates diff lines to the given display width, so long
	// generated lines don't wrap in the terminal. 0 means no limit.
	Width int
}

const maxDiffLines = 10000

var (
	diffHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	diffHunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	diffAddStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	diffDelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// UnifiedDiff returns a plain unified diff of old vs newer, or "" when
// they are identical. Used for WouldWrite entries in dry-run reports.
func UnifiedDiff(oldPath, newPath string, old, newer []byte) string {
	return FormatDiff(oldPath, newPath, old, newer, nil)
}

// FormatDiff returns a unified diff with the given options.
func FormatDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	if opts == nil {
		opts = &DiffOptions{ContextLines: 3}
	}
	if opts.ContextLines == 0 {
		opts.ContextLines = 3
	}

	if isBinary(old) || isBinary(newer) {
		return "binary files differ\n"
	}
	if bytes.Equal(old, newer) {
		return ""
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		return fmt.Sprintf("files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines))
	}

	edits := shortestEdits(oldLines, newLines)
	hunks := groupHunks(edits, opts.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	writeStyled(&buf, "--- "+oldPath, diffHeaderStyle, opts.Color)
	writeStyled(&buf, "+++ "+newPath, diffHeaderStyle, opts.Color)
	for _, h := range hunks {
		writeStyled(&buf, fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount), diffHunkStyle, opts.Color)
		for _, line := range h.lines {
			text := truncate(line.text, opts.Width-1)
			switch line.op {
			case editInsert:
				writeStyled(&buf, "+"+text, diffAddStyle, opts.Color)
			case editDelete:
				writeStyled(&buf, "-"+text, diffDelStyle, opts.Color)
			default:
				buf.WriteString(" " + text + "\n")
			}
		}
	}
	return buf.String()
}

func writeStyled(buf *strings.Builder, line string, style lipgloss.Style, color bool) {
	if color {
		buf.WriteString(style.Render(line))
	} else {
		buf.WriteString(line)
	}
	buf.WriteByte('\n')
}

// truncate shortens line to max runes, marking the cut with an ellipsis.
// max <= 0 disables truncation.
func truncate(line string, max int) string {
	if max <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// TerminalWidth returns the current terminal width for diff display,
// defaulting to 80 when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

type editOp int

const (
	editEqual editOp = iota
	editInsert
	editDelete
)

type editLine struct {
	op      editOp
	text    string
	oldLine int // 1-based, 0 when inserted
	newLine int // 1-based, 0 when deleted
}

type diffHunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []editLine
}

// shortestEdits computes the line-level edit script using Myers'
// O(ND) algorithm ("An O(ND) Difference Algorithm and Its Variations",
// 1986), with the k-diagonal array kept in a slice.
func shortestEdits(old, newer []string) []editLine {
	n, m := len(old), len(newer)
	maxD := n + m
	if maxD == 0 {
		return nil
	}

	offset := maxD
	v := make([]int, 2*maxD+2)
	var trace [][]int

	found := false
	for d := 0; d <= maxD && !found; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && old[x] == newer[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				found = true
				break
			}
		}
	}

	// Backtrack through the snapshots to recover the script.
	var reversed []editLine
	x, y := n, m
	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		snap := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && snap[offset+k-1] < snap[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := snap[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			reversed = append(reversed, editLine{op: editEqual, text: old[x], oldLine: x + 1, newLine: y + 1})
		}
		if d > 0 {
			if x == prevX {
				y--
				reversed = append(reversed, editLine{op: editInsert, text: newer[y], newLine: y + 1})
			} else {
				x--
				reversed = append(reversed, editLine{op: editDelete, text: old[x], oldLine: x + 1})
			}
		}
	}

	edits := make([]editLine, len(reversed))
	for i := range reversed {
		edits[i] = reversed[len(reversed)-1-i]
	}
	return edits
}

// groupHunks collects changed lines into hunks with surrounding context,
// merging changes whose context would overlap.
func groupHunks(edits []editLine, context int) []diffHunk {
	var changed []int
	for i, e := range edits {
		if e.op != editEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []diffHunk
	start := changed[0]
	end := changed[0]
	for _, idx := range changed[1:] {
		if idx-end <= context*2+1 {
			end = idx
			continue
		}
		hunks = append(hunks, makeHunk(edits, start, end, context))
		start, end = idx, idx
	}
	hunks = append(hunks, makeHunk(edits, start, end, context))
	return hunks
}

func makeHunk(edits []editLine, firstChange, lastChange, context int) diffHunk {
	lo := firstChange - context
	if lo < 0 {
		lo = 0
	}
	hi := lastChange + context
	if hi > len(edits)-1 {
		hi = len(edits) - 1
	}

	h := diffHunk{lines: edits[lo : hi+1]}
	for _, line := range h.lines {
		if line.oldLine > 0 && (h.oldStart == 0 || line.oldLine < h.oldStart) {
			h.oldStart = line.oldLine
		}
		if line.newLine > 0 && (h.newStart == 0 || line.newLine < h.newStart) {
			h.newStart = line.newLine
		}
		if line.op != editInsert {
			h.oldCount++
		}
		if line.op != editDelete {
			h.newCount++
		}
	}
	return h
}

// isBinary treats content containing a NUL byte in its head as binary.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 8192 {
		head = head[:8192]
	}
	return bytes.IndexByte(head, 0) != -1
}

// splitLines splits on newline, dropping the trailing empty element a
// final newline produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
