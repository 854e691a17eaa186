package parinfer

import "strings"

func (st *state) finalizeResult() error {
	if st.quoteDanger {
		return st.newError(ErrQuoteDanger)
	}
	if st.isInStr {
		return st.newError(ErrUnclosedQuote)
	}

	if len(st.parenStack) != 0 && st.mode == Paren {
		return st.newError(ErrUnclosedParen)
	}
	if st.mode == Indent {
		// close the remaining openers against a virtual final empty line
		st.initLine()
		if err := st.onIndent(); err != nil {
			return err
		}
	}
	st.success = true
	return nil
}

// getLineEnding: CRLF if any CR appears anywhere in the original text.
func getLineEnding(text string) string {
	if strings.ContainsRune(text, '\r') {
		return "\r\n"
	}
	return "\n"
}

// publicResult assembles the Answer from a finished state.
func (st *state) publicResult() *Answer {
	lineEnding := getLineEnding(st.origText)

	answer := &Answer{Success: st.success}

	if st.success || st.partialResult {
		answer.Text = strings.Join(st.lines, lineEnding)
		answer.CursorX = posPtr(st.cursorX)
		answer.CursorLine = posPtr(st.cursorLine)
		answer.ParenTrails = copyTrails(st.parenTrails)
		if st.returnParens {
			answer.Parens = st.parens
		}
	} else {
		answer.Text = st.origText
		answer.CursorX = posPtr(st.origCursorX)
		answer.CursorLine = posPtr(st.origCursorLine)
	}

	if st.success {
		answer.TabStops = st.tabStops
	} else {
		answer.Error = st.err
	}
	return answer
}

func posPtr(v int) *int {
	if v == unset {
		return nil
	}
	return &v
}

func copyTrails(trails []*ParenTrail) []ParenTrail {
	if trails == nil {
		return nil
	}
	out := make([]ParenTrail, len(trails))
	for i, t := range trails {
		out[i] = *t
	}
	return out
}
