package parinfer

import (
	"strings"

	"github.com/mlotysz/parinfer-go/segment"
)

// unset marks an absent column or line number; every position the engine
// tracks is otherwise non-negative.
const unset = -1

const doubleSpace = "  "

type trackingArgTabStop int

const (
	argTabStopNone trackingArgTabStop = iota
	argTabStopSpace
	argTabStopArg
)

// parenTrail is the working trail for the current line plus the clamped
// shadow holding whatever the cursor carved off.
type parenTrail struct {
	lineNo  int
	startX  int
	endX    int
	openers []*OpenParen

	clamped struct {
		startX  int
		endX    int
		openers []*OpenParen
	}
}

type errorPos struct {
	lineNo      int
	x           int
	inputLineNo int
	inputX      int
}

// state is the working set of one processText call. It is never shared; a
// fresh one is built per call (and per restart).
type state struct {
	mode  Mode
	smart bool

	origText       string
	origCursorX    int
	origCursorLine int

	inputLines  []string
	inputLineNo int
	inputX      int

	lines  []string
	lineNo int
	ch     string
	x      int

	indentX int

	parenStack []*OpenParen

	tabStops []TabStop

	parenTrail  parenTrail
	parenTrails []*ParenTrail

	returnParens bool
	parens       []*OpenParen

	cursorX        int
	cursorLine     int
	prevCursorX    int
	prevCursorLine int

	selectionStartLine int

	changes map[changeKey]changeDelta

	isEscaping  bool
	isEscaped   bool
	isInStr     bool
	isInComment bool
	commentX    int

	quoteDanger    bool
	trackingIndent bool
	skipChar       bool
	success        bool
	partialResult  bool
	forceBalance   bool

	maxIndent   int
	indentDelta int

	trackingArgTabStop trackingArgTabStop

	err           *Error
	errorPosCache map[ErrorName]errorPos
}

func optInt(p *int) int {
	if p == nil {
		return unset
	}
	return *p
}

func newState(text string, opts *Options, mode Mode, smart bool) *state {
	if opts == nil {
		opts = &Options{}
	}
	st := &state{
		mode:  mode,
		smart: smart,

		origText:       text,
		origCursorX:    optInt(opts.CursorX),
		origCursorLine: optInt(opts.CursorLine),

		inputLines:  splitLines(text),
		inputLineNo: unset,
		inputX:      unset,

		lineNo:  unset,
		ch:      "",
		indentX: unset,

		cursorX:        optInt(opts.CursorX),
		cursorLine:     optInt(opts.CursorLine),
		prevCursorX:    optInt(opts.PrevCursorX),
		prevCursorLine: optInt(opts.PrevCursorLine),

		selectionStartLine: optInt(opts.SelectionStartLine),

		changes: transformChanges(opts.Changes),

		commentX: unset,

		trackingIndent: false,
		partialResult:  opts.PartialResult,
		forceBalance:   opts.ForceBalance,
		returnParens:   opts.ReturnParens,

		maxIndent:   unset,
		indentDelta: 0,

		trackingArgTabStop: argTabStopNone,

		errorPosCache: make(map[ErrorName]errorPos),
	}
	st.parenTrail = initialParenTrail()
	return st
}

func initialParenTrail() parenTrail {
	t := parenTrail{lineNo: unset, startX: unset, endX: unset}
	t.clamped.startX = unset
	t.clamped.endX = unset
	return t
}

// peek returns the i-th element from the top of stack, or nil.
func peek(stack []*OpenParen, i int) *OpenParen {
	idx := len(stack) - 1 - i
	if idx < 0 {
		return nil
	}
	return stack[idx]
}

func isOpenParen(ch string) bool {
	return ch == "(" || ch == "[" || ch == "{"
}

func isCloseParen(ch string) bool {
	return ch == ")" || ch == "]" || ch == "}"
}

func matchingCloseParen(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	}
	return ""
}

// isValidCloseParen reports whether ch closes the opener on top of stack.
func isValidCloseParen(stack []*OpenParen, ch string) bool {
	top := peek(stack, 0)
	if top == nil {
		return false
	}
	return matchingCloseParen(top.Ch) == ch
}

func (st *state) isInCodeContext() bool {
	return !st.isInComment && !st.isInStr
}

func (st *state) isWhitespaceCh() bool {
	return !st.isEscaped && (st.ch == " " || st.ch == doubleSpace)
}

// replaceWithinLine splices repl over the display-column range [start, end)
// of the given working line, shifting the cursor when it sits to the right
// of the edit on that line.
func (st *state) replaceWithinLine(lineNo, start, end int, repl string) {
	line := st.lines[lineNo]
	bStart := segment.ColumnByteIndex(line, start)
	bEnd := segment.ColumnByteIndex(line, end)
	st.lines[lineNo] = line[:bStart] + repl + line[bEnd:]

	st.shiftCursorOnEdit(lineNo, start, end, repl)
}

func (st *state) insertWithinLine(lineNo, x int, insert string) {
	st.replaceWithinLine(lineNo, x, x, insert)
}

func (st *state) shiftCursorOnEdit(lineNo, start, end int, repl string) {
	oldWidth := end - start
	newWidth := segment.Width(repl)
	dx := newWidth - oldWidth

	if dx != 0 &&
		st.cursorLine == lineNo &&
		st.cursorX != unset &&
		st.cursorX > start {
		st.cursorX += dx
		if st.cursorX < 0 {
			st.cursorX = 0
		}
	}
}

func repeatSpaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// countCloseParens counts close parens in the display-column range
// [startX, endX) of a working line. Trail regions only ever hold close
// parens and whitespace, all single-byte.
func (st *state) countCloseParens(lineNo, startX, endX int) int {
	return len(st.closeParensIn(lineNo, startX, endX))
}

func (st *state) closeParensIn(lineNo, startX, endX int) string {
	line := st.lines[lineNo]
	bStart := segment.ColumnByteIndex(line, startX)
	bEnd := segment.ColumnByteIndex(line, endX)
	var b strings.Builder
	for _, c := range []byte(line[bStart:bEnd]) {
		if c == ')' || c == ']' || c == '}' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (st *state) isCursorOnRightOf(x int) bool {
	return st.cursorLine == st.lineNo &&
		st.cursorX != unset &&
		x != unset &&
		st.cursorX > x
}

func (st *state) isCursorInComment() bool {
	return st.isCursorOnRightOf(st.commentX)
}

func (st *state) isCursorLeftOfParen() bool {
	return st.cursorLine == st.lineNo &&
		st.cursorX != unset &&
		st.cursorX <= st.x
}
