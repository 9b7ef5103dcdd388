package generator

import (
	"fmt"
	"strings"
)

// AnchorPrefix is the sentinel every anchor marker line carries. The
// surrounding comment syntax belongs to the target file's language and is
// irrelevant to the planner; any line containing the marker matches.
const AnchorPrefix = "loco:generator:"

// blockEndSuffix marks the closing line of a ReplaceBlock region.
const blockEndSuffix = ":end"

// Placement says where insert text lands relative to the anchor.
type Placement int

const (
	Before Placement = iota
	After
	ReplaceBlock
)

func (p Placement) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	case ReplaceBlock:
		return "replace-block"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// EditPlan is the pure description of one file edit: replace the byte
// range [Start, End) with Replacement. A zero-length range is a pure
// insertion. Application is all-or-nothing; a NoOp plan means the insert
// text is already present and the file must not change.
type EditPlan struct {
	Path        string
	Anchor      string
	Start       int
	End         int
	Replacement string
	NoOp        bool
}

// Apply splices the plan into contents. Pure; the caller owns the write.
func (p EditPlan) Apply(contents []byte) []byte {
	if p.NoOp {
		return contents
	}
	out := make([]byte, 0, len(contents)-(p.End-p.Start)+len(p.Replacement))
	out = append(out, contents[:p.Start]...)
	out = append(out, p.Replacement...)
	out = append(out, contents[p.End:]...)
	return out
}

// anchorLine records where one marker line sits in the file.
type anchorLine struct {
	start int // byte offset of the line's first byte
	end   int // byte offset just past the line's newline (or EOF)
	isEnd bool
}

// Plan computes the edit for injecting insertText at the named anchor.
// The anchor must occur exactly once; use PlanAt with an index when a file
// legitimately carries the same anchor more than once.
func Plan(path string, contents []byte, anchorName string, placement Placement, insertText string) (EditPlan, error) {
	return PlanAt(path, contents, anchorName, placement, insertText, -1)
}

// PlanAt is Plan with an explicit occurrence index (0-based). index < 0
// requires the anchor to be unique.
func PlanAt(path string, contents []byte, anchorName string, placement Placement, insertText string, index int) (EditPlan, error) {
	starts, ends := findAnchors(contents, anchorName)

	if len(starts) == 0 {
		return EditPlan{}, fmt.Errorf("%w: %q in %s", ErrAnchorNotFound, AnchorPrefix+anchorName, path)
	}
	if index < 0 && len(starts) > 1 {
		return EditPlan{}, fmt.Errorf("%w: %q occurs %d times in %s", ErrAmbiguousAnchor, AnchorPrefix+anchorName, len(starts), path)
	}
	if index >= len(starts) {
		return EditPlan{}, fmt.Errorf("%w: %q occurrence %d in %s (only %d present)", ErrAnchorNotFound, AnchorPrefix+anchorName, index, path, len(starts))
	}
	if index < 0 {
		index = 0
	}
	anchor := starts[index]

	if insertText != "" && !strings.HasSuffix(insertText, "\n") {
		insertText += "\n"
	}

	switch placement {
	case After:
		pos := anchor.end
		if pos == len(contents) && !endsWithNewline(contents) {
			// Anchor line is the last line and has no newline of its own.
			return planAt(path, anchorName, pos, pos, "\n"+insertText, false), nil
		}
		if hasTextAt(contents, pos, insertText) {
			return planAt(path, anchorName, pos, pos, "", true), nil
		}
		return planAt(path, anchorName, pos, pos, insertText, false), nil

	case Before:
		pos := anchor.start
		if pos >= len(insertText) && string(contents[pos-len(insertText):pos]) == insertText {
			return planAt(path, anchorName, pos, pos, "", true), nil
		}
		return planAt(path, anchorName, pos, pos, insertText, false), nil

	case ReplaceBlock:
		var blockEnd *anchorLine
		for i := range ends {
			if ends[i].start >= anchor.end {
				blockEnd = &ends[i]
				break
			}
		}
		if blockEnd == nil {
			return EditPlan{}, fmt.Errorf("%w: %q in %s has no matching end marker", ErrMalformedBlock, AnchorPrefix+anchorName, path)
		}
		interior := string(contents[anchor.end:blockEnd.start])
		if interior == insertText {
			return planAt(path, anchorName, anchor.end, blockEnd.start, "", true), nil
		}
		return planAt(path, anchorName, anchor.end, blockEnd.start, insertText, false), nil

	default:
		return EditPlan{}, fmt.Errorf("unknown placement %v for anchor %q in %s", placement, anchorName, path)
	}
}

func planAt(path, anchor string, start, end int, replacement string, noop bool) EditPlan {
	return EditPlan{
		Path:        path,
		Anchor:      anchor,
		Start:       start,
		End:         end,
		Replacement: replacement,
		NoOp:        noop,
	}
}

// findAnchors scans contents line by line for start and end markers of
// the named anchor. Names are matched as whole tokens, so anchor "routes"
// does not match "routes_admin".
func findAnchors(contents []byte, anchorName string) (starts, ends []anchorLine) {
	marker := AnchorPrefix + anchorName
	text := string(contents)

	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		var next int
		if lineEnd < 0 {
			lineEnd = len(text)
			next = len(text) + 1
		} else {
			lineEnd = lineStart + lineEnd + 1
			next = lineEnd
		}
		line := text[lineStart:lineEnd]

		if idx := strings.Index(line, marker); idx >= 0 {
			rest := strings.TrimRight(line[idx+len(marker):], "\r\n")
			switch {
			case strings.HasPrefix(rest, blockEndSuffix) && terminated(rest[len(blockEndSuffix):]):
				ends = append(ends, anchorLine{start: lineStart, end: lineEnd, isEnd: true})
			case terminated(rest):
				starts = append(starts, anchorLine{start: lineStart, end: lineEnd})
			}
		}

		if next > len(text) {
			break
		}
		lineStart = next
	}
	return starts, ends
}

// terminated reports whether rest does not continue an anchor name, i.e.
// the marker ended at a token boundary.
func terminated(rest string) bool {
	if rest == "" {
		return true
	}
	c := rest[0]
	if c == ':' || c == '_' || c == '-' {
		return false
	}
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return false
	}
	return true
}

func endsWithNewline(b []byte) bool {
	return len(b) > 0 && b[len(b)-1] == '\n'
}

func hasTextAt(contents []byte, pos int, text string) bool {
	return pos+len(text) <= len(contents) && string(contents[pos:pos+len(text)]) == text
}
