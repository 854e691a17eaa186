package parinfer

import "errors"

// errRestart unwinds a smart-mode run so processText can re-enter in paren
// mode. It never escapes the engine.
var errRestart = errors.New("parinfer: restart in paren mode")

// cacheErrorPos remembers the first site of a condition so the eventual
// error reports where it arose, not where processing gave up.
func (st *state) cacheErrorPos(name ErrorName) {
	st.errorPosCache[name] = errorPos{
		lineNo:      st.lineNo,
		x:           st.x,
		inputLineNo: st.inputLineNo,
		inputX:      st.inputX,
	}
}

// newError builds the public error for name. PartialResult selects working
// coordinates over input coordinates; unclosed-paren always points at the
// opener left on the stack.
func (st *state) newError(name ErrorName) *Error {
	pick := func(pos errorPos) (lineNo, x int) {
		if st.partialResult {
			return pos.lineNo, pos.x
		}
		return pos.inputLineNo, pos.inputX
	}

	e := &Error{Name: name, Message: errorMessages[name]}
	if cache, ok := st.errorPosCache[name]; ok {
		e.LineNo, e.X = pick(cache)
	} else {
		e.LineNo, e.X = pick(errorPos{
			lineNo:      st.lineNo,
			x:           st.x,
			inputLineNo: st.inputLineNo,
			inputX:      st.inputX,
		})
	}

	opener := peek(st.parenStack, 0)
	switch name {
	case ErrUnmatchedCloseParen:
		cache, cached := st.errorPosCache[ErrUnmatchedOpenParen]
		if cached || opener != nil {
			extra := &Error{Name: ErrUnmatchedOpenParen, Message: errorMessages[ErrUnmatchedOpenParen]}
			if cached {
				extra.LineNo, extra.X = pick(cache)
			} else {
				extra.LineNo, extra.X = openerPos(opener, st.partialResult)
			}
			e.Extra = extra
		}
	case ErrUnclosedParen:
		if opener != nil {
			e.LineNo, e.X = openerPos(opener, st.partialResult)
		}
	}
	return e
}

func openerPos(opener *OpenParen, partial bool) (lineNo, x int) {
	if partial {
		return opener.LineNo, opener.X
	}
	return opener.InputLineNo, opener.InputX
}
