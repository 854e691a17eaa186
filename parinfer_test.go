package parinfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iptr(v int) *int { return &v }

func TestIndentMode(t *testing.T) {
	test := func(input, expected string) func(*testing.T) {
		return func(t *testing.T) {
			answer := IndentMode(input, nil)
			require.True(t, answer.Success)
			assert.Equal(t, expected, answer.Text)
		}
	}

	t.Run("", test("(def foo\n  bar", "(def foo\n  bar)"))
	t.Run("", test("(let [x 1]\n  (+ x 2", "(let [x 1]\n  (+ x 2))"))
	t.Run("", test("(def foo)", "(def foo)"))
	t.Run("", test("", ""))
	t.Run("", test("(foo", "(foo)"))
	t.Run("", test("(a (b))", "(a (b))"))
	t.Run("", test("(foo\n; comment\n  bar", "(foo\n; comment\n  bar)"))
	t.Run("", test("(str \"a(b\"", "(str \"a(b\")"))
	// dedent to column 0 closes both forms
	t.Run("", test("(a\n  (b\nc", "(a\n  (b))\nc"))
	// dedent closes every form opened at or right of the new indentation
	t.Run("", test("(a\n  (b\n    (c\n  d", "(a\n  (b\n    (c))\n  d)"))
	// stray closer inside a line is dropped
	t.Run("", test("(a]\n", "(a)\n"))
	// lone leading closer is dropped silently (no trail on the line)
	t.Run("", test(")", ""))
}

func TestIndentModeTabs(t *testing.T) {
	t.Run("tab in code becomes two spaces", func(t *testing.T) {
		answer := IndentMode("(def\tfoo", nil)
		require.True(t, answer.Success)
		assert.Equal(t, "(def  foo)", answer.Text)
	})

	t.Run("leading tab", func(t *testing.T) {
		answer := IndentMode("\t(foo", nil)
		require.True(t, answer.Success)
		assert.Equal(t, "  (foo)", answer.Text)
	})
}

func TestParenMode(t *testing.T) {
	test := func(input, expected string) func(*testing.T) {
		return func(t *testing.T) {
			answer := ParenMode(input, nil)
			require.True(t, answer.Success)
			assert.Equal(t, expected, answer.Text)
		}
	}

	t.Run("", test("(def foo\nbar)", "(def foo\n bar)"))
	t.Run("", test("(def foo)", "(def foo)"))
	t.Run("", test("", ""))
	// indentation is capped by the closed child form
	t.Run("", test("(let [x 1]\n      y)", "(let [x 1]\n     y)"))
	// a leading closer joins the previous line's paren trail
	t.Run("", test("(foo\n)", "(foo)\n"))
}

func TestParenModeCursor(t *testing.T) {
	t.Run("leading closer stays when cursor is on it", func(t *testing.T) {
		answer := ParenMode("(foo\n)", &Options{CursorX: iptr(0), CursorLine: iptr(1)})
		require.True(t, answer.Success)
		assert.Equal(t, "(foo\n )", answer.Text)
	})

	t.Run("cursor shifts with inferred indentation", func(t *testing.T) {
		answer := ParenMode("(def foo\nbar)", &Options{CursorX: iptr(1), CursorLine: iptr(1)})
		require.True(t, answer.Success)
		assert.Equal(t, "(def foo\n bar)", answer.Text)
		require.NotNil(t, answer.CursorX)
		assert.Equal(t, 2, *answer.CursorX)
		require.NotNil(t, answer.CursorLine)
		assert.Equal(t, 1, *answer.CursorLine)
	})
}

func TestSmartMode(t *testing.T) {
	t.Run("closes open parens from indentation", func(t *testing.T) {
		answer := SmartMode("(def foo\n  bar", nil)
		require.True(t, answer.Success)
		assert.Equal(t, "(def foo\n  bar)", answer.Text)
	})

	t.Run("leading closer restarts into paren mode and is removed", func(t *testing.T) {
		answer := SmartMode(")foo", nil)
		require.True(t, answer.Success)
		assert.Equal(t, "foo", answer.Text)
	})

	t.Run("selection disables smart behavior", func(t *testing.T) {
		answer := SmartMode(")foo", &Options{SelectionStartLine: iptr(0)})
		require.False(t, answer.Success)
		assert.Equal(t, ErrLeadingCloseParen, answer.Error.Name)
	})

	t.Run("indent shift carries child lines along", func(t *testing.T) {
		opts := &Options{
			CursorX:    iptr(2),
			CursorLine: iptr(0),
			Changes:    []Change{{X: 0, LineNo: 0, OldText: "", NewText: "  "}},
		}
		answer := SmartMode("  (foo\n  bar)", opts)
		require.True(t, answer.Success)
		assert.Equal(t, "  (foo\n    bar)", answer.Text)
	})
}

func TestCursorHolding(t *testing.T) {
	text := "(a\n  (b))"

	t.Run("holding keeps the typed closer in place", func(t *testing.T) {
		answer := SmartMode(text, &Options{CursorX: iptr(2), CursorLine: iptr(1)})
		require.True(t, answer.Success)
		assert.Equal(t, text, answer.Text)
		require.Len(t, answer.ParenTrails, 1)
		assert.Equal(t, ParenTrail{LineNo: 1, StartX: 4, EndX: 6}, answer.ParenTrails[0])
	})

	t.Run("releasing the hold restarts as paren mode", func(t *testing.T) {
		opts := &Options{
			CursorX: iptr(0), CursorLine: iptr(0),
			PrevCursorX: iptr(2), PrevCursorLine: iptr(1),
		}
		answer := SmartMode(text, opts)
		require.True(t, answer.Success)

		parenAnswer := ParenMode(text, &Options{CursorX: iptr(0), CursorLine: iptr(0)})
		require.True(t, parenAnswer.Success)
		assert.Equal(t, parenAnswer.Text, answer.Text)
	})
}

func TestCursorClampsParenTrail(t *testing.T) {
	text := "(def foo [a b ]"

	t.Run("without cursor the gap is removed", func(t *testing.T) {
		answer := IndentMode(text, nil)
		require.True(t, answer.Success)
		assert.Equal(t, "(def foo [a b])", answer.Text)
	})

	t.Run("cursor in the trail keeps the gap", func(t *testing.T) {
		answer := IndentMode(text, &Options{CursorX: iptr(14), CursorLine: iptr(0)})
		require.True(t, answer.Success)
		assert.Equal(t, "(def foo [a b ])", answer.Text)
		require.Len(t, answer.ParenTrails, 1)
		assert.Equal(t, ParenTrail{LineNo: 0, StartX: 13, EndX: 16}, answer.ParenTrails[0])
	})
}

func TestErrors(t *testing.T) {
	t.Run("paren mode rejects stray closer", func(t *testing.T) {
		answer := ParenMode(")", nil)
		require.False(t, answer.Success)
		require.NotNil(t, answer.Error)
		assert.Equal(t, ErrUnmatchedCloseParen, answer.Error.Name)
		assert.Equal(t, "Unmatched close-paren.", answer.Error.Message)
		assert.Equal(t, 0, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
		// failed calls return the input unchanged
		assert.Equal(t, ")", answer.Text)
	})

	t.Run("leading close paren in indent mode", func(t *testing.T) {
		answer := IndentMode(")abc", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrLeadingCloseParen, answer.Error.Name)
		assert.Equal(t, 0, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
		assert.Equal(t, ")abc", answer.Text)
	})

	t.Run("force balance tolerates leading close paren", func(t *testing.T) {
		answer := IndentMode(")abc", &Options{ForceBalance: true})
		require.True(t, answer.Success)
		assert.Equal(t, "abc", answer.Text)
	})

	t.Run("unclosed quote", func(t *testing.T) {
		answer := IndentMode("\"abc", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrUnclosedQuote, answer.Error.Name)
		assert.Equal(t, 0, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
	})

	t.Run("quote danger in comment", func(t *testing.T) {
		answer := IndentMode("(def ; \"\nbar", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrQuoteDanger, answer.Error.Name)
		assert.Equal(t, 7, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
	})

	t.Run("eol backslash", func(t *testing.T) {
		answer := IndentMode("foo\\", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrEolBackslash, answer.Error.Name)
		assert.Equal(t, 3, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
	})

	t.Run("escaped newline inside a comment is not an error", func(t *testing.T) {
		answer := IndentMode("; a\\\nb", nil)
		require.True(t, answer.Success)
		assert.Equal(t, "; a\\\nb", answer.Text)
	})

	t.Run("unclosed paren in paren mode points at the opener", func(t *testing.T) {
		answer := ParenMode("  (def", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrUnclosedParen, answer.Error.Name)
		assert.Equal(t, 2, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
	})

	t.Run("unmatched close outside trail carries the opener position", func(t *testing.T) {
		answer := IndentMode("(a] b", nil)
		require.False(t, answer.Success)
		assert.Equal(t, ErrUnmatchedCloseParen, answer.Error.Name)
		assert.Equal(t, 2, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
		require.NotNil(t, answer.Error.Extra)
		assert.Equal(t, ErrUnmatchedOpenParen, answer.Error.Extra.Name)
		assert.Equal(t, 0, answer.Error.Extra.X)
		assert.Equal(t, 0, answer.Error.Extra.LineNo)
	})

	t.Run("unmatched close with partial result still points extra at the opener", func(t *testing.T) {
		answer := IndentMode("(a] b", &Options{PartialResult: true})
		require.False(t, answer.Success)
		assert.Equal(t, ErrUnmatchedCloseParen, answer.Error.Name)
		assert.Equal(t, 2, answer.Error.X)
		assert.Equal(t, 0, answer.Error.LineNo)
		require.NotNil(t, answer.Error.Extra)
		assert.Equal(t, 0, answer.Error.Extra.X)
		assert.Equal(t, 0, answer.Error.Extra.LineNo)
		assert.Equal(t, "(a b", answer.Text)
	})

	t.Run("partial result emits the working text", func(t *testing.T) {
		answer := IndentMode(")abc", &Options{PartialResult: true})
		require.False(t, answer.Success)
		assert.Equal(t, ErrLeadingCloseParen, answer.Error.Name)
		assert.Equal(t, "abc", answer.Text)
	})
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		"(def foo\n  bar",
		"(let [x 1]\n  (+ x 2",
		"(a\n  (b\n    (c\n  d",
		"(foo\n; comment\n  bar",
	}
	for _, input := range inputs {
		t.Run("", func(t *testing.T) {
			once := IndentMode(input, nil)
			require.True(t, once.Success)

			again := ParenMode(once.Text, nil)
			require.True(t, again.Success)
			assert.Equal(t, once.Text, again.Text)

			indentAgain := IndentMode(once.Text, nil)
			require.True(t, indentAgain.Success)
			assert.Equal(t, once.Text, indentAgain.Text)
		})
	}
}

func TestLineEndings(t *testing.T) {
	answer := IndentMode("(def foo\r\n  bar", nil)
	require.True(t, answer.Success)
	assert.Equal(t, "(def foo\r\n  bar)", answer.Text)
}

func TestWideCharColumns(t *testing.T) {
	// the wide char occupies two display cells, so the trail lands at column 5
	answer := IndentMode("(爱 b", nil)
	require.True(t, answer.Success)
	assert.Equal(t, "(爱 b)", answer.Text)
	require.Len(t, answer.ParenTrails, 1)
	assert.Equal(t, ParenTrail{LineNo: 0, StartX: 5, EndX: 6}, answer.ParenTrails[0])
}

func TestTabStops(t *testing.T) {
	answer := IndentMode("(def foo\n  bar", &Options{CursorX: iptr(2), CursorLine: iptr(1)})
	require.True(t, answer.Success)
	require.Len(t, answer.TabStops, 1)
	assert.Equal(t, TabStop{Ch: "(", X: 0, LineNo: 0, ArgX: 5}, answer.TabStops[0])
}

func TestReturnParens(t *testing.T) {
	answer := IndentMode("(a (b))", &Options{ReturnParens: true})
	require.True(t, answer.Success)
	require.Len(t, answer.Parens, 1)

	root := answer.Parens[0]
	assert.Equal(t, "(", root.Ch)
	assert.Equal(t, 0, root.X)
	require.Len(t, root.Children, 1)

	child := root.Children[0]
	assert.Equal(t, 3, child.X)
	require.NotNil(t, child.Closer)
	assert.Equal(t, ")", child.Closer.Ch)
	require.NotNil(t, root.Closer)
	require.NotNil(t, root.Closer.Trail)
	assert.Equal(t, ParenTrail{LineNo: 0, StartX: 5, EndX: 7}, *root.Closer.Trail)
}

func TestProcess(t *testing.T) {
	t.Run("dispatches on mode", func(t *testing.T) {
		answer := Process(Request{Mode: Paren, Text: "(def foo\nbar)"})
		require.True(t, answer.Success)
		assert.Equal(t, "(def foo\n bar)", answer.Text)
	})

	t.Run("synthesizes a change from prev text", func(t *testing.T) {
		prev := "(foo\n  bar)"
		opts := &Options{
			CursorX:    iptr(2),
			CursorLine: iptr(0),
			PrevText:   &prev,
		}
		answer := Process(Request{Mode: Smart, Text: "  (foo\n  bar)", Options: opts})
		require.True(t, answer.Success)
		assert.Equal(t, "  (foo\n    bar)", answer.Text)
	})

	t.Run("explicit changes win over prev text", func(t *testing.T) {
		prev := "ignored"
		opts := &Options{
			CursorX:    iptr(2),
			CursorLine: iptr(0),
			PrevText:   &prev,
			Changes:    []Change{{X: 0, LineNo: 0, OldText: "", NewText: "  "}},
		}
		answer := Process(Request{Mode: Smart, Text: "  (foo\n  bar)", Options: opts})
		require.True(t, answer.Success)
		assert.Equal(t, "  (foo\n    bar)", answer.Text)
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "indent", Indent.String())
	assert.Equal(t, "paren", Paren.String())
	assert.Equal(t, "smart", Smart.String())
}

func TestErrorFormat(t *testing.T) {
	e := &Error{Name: ErrUnclosedParen, Message: errorMessages[ErrUnclosedParen], X: 2, LineNo: 0}
	assert.Equal(t, "1:3 Unclosed open-paren.", e.Error())
}
