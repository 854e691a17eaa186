package parinfer

import "github.com/mlotysz/parinfer-go/segment"

// processText runs the whole state machine over text. A restart signal
// raised by a smart run discards the state and re-enters in paren mode with
// the smart flag carried over; that is how paren mode acquires its
// smart-guarded behaviors.
func processText(text string, opts *Options, mode Mode, smart bool) *state {
	st := newState(text, opts, mode, smart)
	err := st.run()
	if err == errRestart {
		return processText(text, opts, Paren, smart)
	}
	if err != nil {
		st.success = false
		st.err = err.(*Error)
		return st
	}
	return st
}

func (st *state) run() error {
	for i := range st.inputLines {
		st.inputLineNo = i
		if err := st.processLine(i); err != nil {
			return err
		}
	}
	return st.finalizeResult()
}

func (st *state) processLine(inputLineNo int) error {
	st.initLine()
	st.lines = append(st.lines, st.inputLines[inputLineNo])

	st.setTabStops()

	col := 0
	it := segment.NewIter(st.inputLines[inputLineNo])
	for {
		g, ok := it.Next()
		if !ok {
			break
		}
		st.inputX = col
		if err := st.processChar(g.Bytes); err != nil {
			return err
		}
		col += g.Width
	}
	// the newline is processed without advancing inputX
	if err := st.processChar("\n"); err != nil {
		return err
	}

	if !st.forceBalance {
		if err := st.checkUnmatchedOutsideParenTrail(); err != nil {
			return err
		}
		if err := st.checkLeadingCloseParen(); err != nil {
			return err
		}
	}

	if st.lineNo == st.parenTrail.lineNo {
		st.finishNewParenTrail()
	}
	return nil
}

func (st *state) initLine() {
	st.x = 0
	st.lineNo++

	st.indentX = unset
	st.commentX = unset
	st.indentDelta = 0

	delete(st.errorPosCache, ErrUnmatchedCloseParen)
	delete(st.errorPosCache, ErrUnmatchedOpenParen)
	delete(st.errorPosCache, ErrLeadingCloseParen)

	st.trackingArgTabStop = argTabStopNone
	st.trackingIndent = !st.isInStr
}

func (st *state) tabStopLine() int {
	if st.selectionStartLine != unset {
		return st.selectionStartLine
	}
	return st.cursorLine
}

func (st *state) setTabStops() {
	if st.tabStopLine() != st.lineNo {
		return
	}
	for _, opener := range st.parenStack {
		st.tabStops = append(st.tabStops, tabStopFromOpener(opener))
	}
	if st.mode == Paren {
		for i := len(st.parenTrail.openers) - 1; i >= 0; i-- {
			st.tabStops = append(st.tabStops, tabStopFromOpener(st.parenTrail.openers[i]))
		}
	}
}

func tabStopFromOpener(opener *OpenParen) TabStop {
	return TabStop{Ch: opener.Ch, X: opener.X, LineNo: opener.LineNo, ArgX: opener.ArgX}
}

func (st *state) processChar(origCh string) error {
	st.ch = origCh
	st.skipChar = false

	st.handleChangeDelta()

	if st.trackingIndent {
		if err := st.checkIndent(); err != nil {
			return err
		}
	}

	if st.skipChar {
		st.ch = ""
	} else {
		if err := st.onChar(); err != nil {
			return err
		}
	}

	st.commitChar(origCh)
	return nil
}

func (st *state) handleChangeDelta() {
	if st.changes == nil || !(st.smart || st.mode == Paren) {
		return
	}
	if delta, ok := st.changes[changeKey{st.inputLineNo, st.inputX}]; ok {
		st.indentDelta += delta.newEndX - delta.oldEndX
	}
}

func (st *state) commitChar(origCh string) {
	ch := st.ch
	origWidth := segment.Width(origCh)
	if ch != origCh {
		st.replaceWithinLine(st.lineNo, st.x, st.x+origWidth, ch)
		st.indentDelta -= origWidth - segment.Width(ch)
	}
	st.x += segment.Width(ch)
}

func (st *state) onChar() error {
	st.isEscaped = false

	ch := st.ch
	switch {
	case st.isEscaping:
		if err := st.afterBackslash(); err != nil {
			return err
		}
	case isOpenParen(ch):
		st.onOpenParen()
	case isCloseParen(ch):
		if err := st.onCloseParen(); err != nil {
			return err
		}
	case ch == "\"":
		st.onQuote()
	case ch == ";":
		st.onSemicolon()
	case ch == "\\":
		st.isEscaping = true
	case ch == "\t":
		st.onTab()
	case ch == "\n":
		st.onNewline()
	}

	ch = st.ch

	if st.isClosable() {
		st.resetParenTrail(st.lineNo, st.x+segment.Width(ch))
	}

	if st.trackingArgTabStop != argTabStopNone {
		st.trackArgTabStop()
	}
	return nil
}

func (st *state) afterBackslash() error {
	st.isEscaping = false
	st.isEscaped = true

	if st.ch == "\n" && st.isInCodeContext() {
		return st.newError(ErrEolBackslash)
	}
	return nil
}

func (st *state) onNewline() {
	st.isInComment = false
	st.ch = ""
}

func (st *state) onOpenParen() {
	if !st.isInCodeContext() {
		return
	}
	opener := &OpenParen{
		InputLineNo: st.inputLineNo,
		InputX:      st.inputX,

		LineNo:         st.lineNo,
		X:              st.x,
		Ch:             st.ch,
		IndentDelta:    st.indentDelta,
		MaxChildIndent: unset,
		ArgX:           unset,
	}

	if st.returnParens {
		if parent := peek(st.parenStack, 0); parent != nil {
			parent.Children = append(parent.Children, opener)
		} else {
			st.parens = append(st.parens, opener)
		}
	}

	st.parenStack = append(st.parenStack, opener)
	st.trackingArgTabStop = argTabStopSpace
}

func (st *state) onCloseParen() error {
	if !st.isInCodeContext() {
		return nil
	}
	if isValidCloseParen(st.parenStack, st.ch) {
		return st.onMatchedCloseParen()
	}
	return st.onUnmatchedCloseParen()
}

func (st *state) onMatchedCloseParen() error {
	opener := peek(st.parenStack, 0)
	if st.returnParens {
		setCloser(opener, st.lineNo, st.x, st.ch)
	}

	st.parenTrail.endX = st.x + 1
	st.parenTrail.openers = append(st.parenTrail.openers, opener)

	if st.mode == Indent && st.smart {
		holding, err := st.checkCursorHolding()
		if err != nil {
			return err
		}
		if holding {
			origStartX := st.parenTrail.startX
			origEndX := st.parenTrail.endX
			origOpeners := st.parenTrail.openers
			st.resetParenTrail(st.lineNo, st.x+1)
			st.parenTrail.clamped.startX = origStartX
			st.parenTrail.clamped.endX = origEndX
			st.parenTrail.clamped.openers = origOpeners
		}
	}
	st.parenStack = st.parenStack[:len(st.parenStack)-1]
	st.trackingArgTabStop = argTabStopNone
	return nil
}

func (st *state) onUnmatchedCloseParen() error {
	switch st.mode {
	case Paren:
		trail := st.parenTrail
		inLeadingParenTrail := trail.lineNo == st.lineNo && trail.startX == st.indentX
		canRemove := st.smart && inLeadingParenTrail
		if !canRemove {
			return st.newError(ErrUnmatchedCloseParen)
		}
	case Indent:
		if _, cached := st.errorPosCache[ErrUnmatchedCloseParen]; !cached {
			st.cacheErrorPos(ErrUnmatchedCloseParen)
			if opener := peek(st.parenStack, 0); opener != nil {
				st.errorPosCache[ErrUnmatchedOpenParen] = errorPos{
					lineNo:      opener.LineNo,
					x:           opener.X,
					inputLineNo: opener.InputLineNo,
					inputX:      opener.InputX,
				}
			}
		}
	}
	st.ch = ""
	return nil
}

// checkCursorHolding reports whether the cursor is inside the window that
// keeps the just-typed closer where it is. When the previous cursor was
// holding and the current no longer is (with no edits this call), the run
// restarts in paren mode.
func (st *state) checkCursorHolding() (bool, error) {
	opener := peek(st.parenStack, 0)
	parent := peek(st.parenStack, 1)
	holdMinX := 0
	if parent != nil {
		holdMinX = parent.X + 1
	}
	holdMaxX := opener.X

	holding := st.cursorLine == opener.LineNo &&
		st.cursorX != unset &&
		holdMinX <= st.cursorX && st.cursorX <= holdMaxX

	if st.changes == nil && st.prevCursorLine != unset {
		prevHolding := st.prevCursorLine == opener.LineNo &&
			st.prevCursorX != unset &&
			holdMinX <= st.prevCursorX && st.prevCursorX <= holdMaxX
		if prevHolding && !holding {
			return false, errRestart
		}
	}
	return holding, nil
}

func (st *state) onQuote() {
	switch {
	case st.isInStr:
		st.isInStr = false
	case st.isInComment:
		st.quoteDanger = !st.quoteDanger
		if st.quoteDanger {
			st.cacheErrorPos(ErrQuoteDanger)
		}
	default:
		st.isInStr = true
		st.cacheErrorPos(ErrUnclosedQuote)
	}
}

func (st *state) onSemicolon() {
	if st.isInCodeContext() {
		st.isInComment = true
		st.commentX = st.x
		st.trackingArgTabStop = argTabStopNone
	}
}

func (st *state) onTab() {
	if st.isInCodeContext() {
		st.ch = doubleSpace
	}
}

// isClosable: the committed grapheme starts (or continues) an expression the
// paren trail must reset past.
func (st *state) isClosable() bool {
	ch := st.ch
	closer := isCloseParen(ch) && !st.isEscaped
	return st.isInCodeContext() && !st.isWhitespaceCh() && ch != "" && !closer
}

func (st *state) trackArgTabStop() {
	switch st.trackingArgTabStop {
	case argTabStopSpace:
		if st.isInCodeContext() && st.isWhitespaceCh() {
			st.trackingArgTabStop = argTabStopArg
		}
	case argTabStopArg:
		if !st.isWhitespaceCh() {
			if opener := peek(st.parenStack, 0); opener != nil {
				opener.ArgX = st.x
			}
			st.trackingArgTabStop = argTabStopNone
		}
	}
}

func setCloser(opener *OpenParen, lineNo, x int, ch string) {
	opener.Closer = &Closer{LineNo: lineNo, X: x, Ch: ch}
}
