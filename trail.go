package parinfer

// resetParenTrail restarts the trail at (lineNo, x) and clears the clamped
// shadow.
func (st *state) resetParenTrail(lineNo, x int) {
	st.parenTrail.lineNo = lineNo
	st.parenTrail.startX = x
	st.parenTrail.endX = x
	st.parenTrail.openers = nil
	st.parenTrail.clamped.startX = unset
	st.parenTrail.clamped.endX = unset
	st.parenTrail.clamped.openers = nil
}

func (st *state) invalidateParenTrail() {
	st.parenTrail = initialParenTrail()
}

func (st *state) isCursorClampingParenTrail() bool {
	return st.isCursorOnRightOf(st.parenTrail.startX) && !st.isCursorInComment()
}

// clampParenTrailToCursor keeps closers left of the cursor in place by
// moving them into the clamped shadow; the active trail restarts at the
// cursor column.
func (st *state) clampParenTrailToCursor() {
	startX := st.parenTrail.startX
	endX := st.parenTrail.endX

	if !st.isCursorClampingParenTrail() {
		return
	}

	newStartX := max(startX, st.cursorX)
	newEndX := max(endX, st.cursorX)

	removeCount := st.countCloseParens(st.lineNo, startX, newStartX)

	openers := st.parenTrail.openers
	st.parenTrail.openers = openers[removeCount:]
	st.parenTrail.startX = newStartX
	st.parenTrail.endX = newEndX

	st.parenTrail.clamped.openers = openers[:removeCount]
	st.parenTrail.clamped.startX = startX
	st.parenTrail.clamped.endX = endX
}

// popParenTrail returns the trail's openers to the paren stack.
func (st *state) popParenTrail() {
	if st.parenTrail.startX == st.parenTrail.endX {
		return
	}
	openers := st.parenTrail.openers
	for i := len(openers) - 1; i >= 0; i-- {
		st.parenStack = append(st.parenStack, openers[i])
	}
	st.parenTrail.openers = nil
}

// setMaxIndent caps how far children of the enclosing opener may indent.
func (st *state) setMaxIndent(opener *OpenParen) {
	if opener == nil {
		return
	}
	if parent := peek(st.parenStack, 0); parent != nil {
		parent.MaxChildIndent = opener.X
	} else {
		st.maxIndent = opener.X
	}
}

// appendParenTrail relocates a leading close paren (paren mode) to the end
// of the previous trail.
func (st *state) appendParenTrail() {
	opener := peek(st.parenStack, 0)
	st.parenStack = st.parenStack[:len(st.parenStack)-1]
	if st.returnParens {
		setCloser(opener, st.parenTrail.lineNo, st.parenTrail.endX, st.ch)
	}

	st.setMaxIndent(opener)
	st.insertWithinLine(st.parenTrail.lineNo, st.parenTrail.endX, st.ch)

	st.parenTrail.endX++
	st.parenTrail.openers = append(st.parenTrail.openers, opener)

	st.updateRememberedParenTrail()
}

// cleanParenTrail drops whitespace interleaved with the trail's closers.
func (st *state) cleanParenTrail() {
	startX := st.parenTrail.startX
	endX := st.parenTrail.endX

	if startX == endX || st.lineNo != st.parenTrail.lineNo {
		return
	}

	closers := st.closeParensIn(st.lineNo, startX, endX)
	spaceCount := (endX - startX) - len(closers)
	if spaceCount > 0 {
		st.replaceWithinLine(st.lineNo, startX, endX, closers)
		st.parenTrail.endX -= spaceCount
	}
}

func (st *state) rememberParenTrail() {
	trail := &st.parenTrail
	total := len(trail.clamped.openers) + len(trail.openers)
	if total == 0 {
		return
	}

	isClamped := trail.clamped.startX != unset
	allClamped := len(trail.openers) == 0

	short := &ParenTrail{LineNo: trail.lineNo, StartX: trail.startX, EndX: trail.endX}
	if isClamped {
		short.StartX = trail.clamped.startX
	}
	if allClamped {
		short.EndX = trail.clamped.endX
	}
	st.parenTrails = append(st.parenTrails, short)

	if st.returnParens {
		for _, opener := range trail.clamped.openers {
			opener.Closer.Trail = short
		}
		for _, opener := range trail.openers {
			opener.Closer.Trail = short
		}
	}
}

func (st *state) updateRememberedParenTrail() {
	var last *ParenTrail
	if n := len(st.parenTrails); n > 0 {
		last = st.parenTrails[n-1]
	}
	if last == nil || last.LineNo != st.parenTrail.lineNo {
		st.rememberParenTrail()
		return
	}
	last.EndX = st.parenTrail.endX
	if st.returnParens {
		if opener := peek(st.parenTrail.openers, 0); opener != nil && opener.Closer != nil {
			opener.Closer.Trail = last
		}
	}
}

// finishNewParenTrail runs once per line that ended with a trail.
func (st *state) finishNewParenTrail() {
	switch {
	case st.isInStr:
		st.invalidateParenTrail()
	case st.mode == Indent:
		st.clampParenTrailToCursor()
		st.popParenTrail()
	case st.mode == Paren:
		st.setMaxIndent(peek(st.parenTrail.openers, 0))
		if st.lineNo != st.cursorLine {
			st.cleanParenTrail()
		}
		st.rememberParenTrail()
	}
}

func (st *state) checkUnmatchedOutsideParenTrail() error {
	if cache, ok := st.errorPosCache[ErrUnmatchedCloseParen]; ok {
		if cache.x < st.parenTrail.startX {
			return st.newError(ErrUnmatchedCloseParen)
		}
	}
	return nil
}

func (st *state) checkLeadingCloseParen() error {
	if _, ok := st.errorPosCache[ErrLeadingCloseParen]; ok {
		if st.parenTrail.lineNo == st.lineNo {
			return st.newError(ErrLeadingCloseParen)
		}
	}
	return nil
}
