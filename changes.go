package parinfer

import (
	"strings"
	"unicode/utf8"

	"github.com/mlotysz/parinfer-go/segment"
)

// ComputeTextChange diffs two versions of a text and returns the single
// differing span, or nil if they are identical. Multi-character edits still
// collapse to one Change: the span between the first and last points of
// divergence.
func ComputeTextChange(prev, curr string) *Change {
	if prev == curr {
		return nil
	}

	start := 0
	for start < len(prev) && start < len(curr) {
		rp, wp := utf8.DecodeRuneInString(prev[start:])
		rc, _ := utf8.DecodeRuneInString(curr[start:])
		if rp != rc {
			break
		}
		start += wp
	}

	pe, ce := len(prev), len(curr)
	for pe > start && ce > start {
		rp, wp := utf8.DecodeLastRuneInString(prev[:pe])
		rc, wc := utf8.DecodeLastRuneInString(curr[:ce])
		if rp != rc {
			break
		}
		pe -= wp
		ce -= wc
	}

	lineNo := strings.Count(prev[:start], "\n")
	lineStart := strings.LastIndexByte(prev[:start], '\n') + 1
	return &Change{
		X:       segment.Width(prev[lineStart:start]),
		LineNo:  lineNo,
		OldText: prev[start:pe],
		NewText: curr[start:ce],
	}
}

// The engine looks changes up by the position where the edited span ends in
// the current text: (line, display column) in input coordinates.
type changeKey struct {
	lineNo int
	x      int
}

type changeDelta struct {
	oldEndX int
	newEndX int
}

func transformChanges(changes []Change) map[changeKey]changeDelta {
	if len(changes) == 0 {
		return nil
	}
	m := make(map[changeKey]changeDelta, len(changes))
	for _, c := range changes {
		oldLines := splitLines(c.OldText)
		newLines := splitLines(c.NewText)

		oldEndX := segment.Width(oldLines[len(oldLines)-1])
		if len(oldLines) == 1 {
			oldEndX += c.X
		}
		newEndX := segment.Width(newLines[len(newLines)-1])
		if len(newLines) == 1 {
			newEndX += c.X
		}
		newEndLineNo := c.LineNo + len(newLines) - 1

		// last writer wins on collision
		m[changeKey{newEndLineNo, newEndX}] = changeDelta{oldEndX: oldEndX, newEndX: newEndX}
	}
	return m
}

// splitLines splits on "\n", stripping a trailing "\r" from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
