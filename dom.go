// Package parinfer keeps the parenthesis structure of Clojure-syntax text in
// sync with its indentation. Indent mode infers close parens from
// indentation, paren mode infers indentation from parens, and smart mode
// picks between them based on cursor movement and recent edits.
package parinfer

import "fmt"

// Version of the library.
const Version = "1.0.0"

type Mode int

const (
	Indent Mode = iota
	Paren
	Smart
)

func (m Mode) String() string {
	switch m {
	case Indent:
		return "indent"
	case Paren:
		return "paren"
	case Smart:
		return "smart"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Change describes one edited span: at display column X on line LineNo,
// OldText was replaced by NewText.
type Change struct {
	X       int
	LineNo  int
	OldText string
	NewText string
}

// Options is the cursor and edit context for one call. Optional ints are
// pointers; nil means absent.
type Options struct {
	CursorX            *int
	CursorLine         *int
	PrevCursorX        *int
	PrevCursorLine     *int
	SelectionStartLine *int

	Changes []Change

	PartialResult bool
	ForceBalance  bool
	ReturnParens  bool

	// PrevText, when set and Changes is empty, is diffed by Process against
	// the input text to synthesize a single Change. IndentMode, ParenMode and
	// SmartMode ignore it.
	PrevText *string
}

// Request is one complete transformation: a mode, the text, and its options.
type Request struct {
	Mode    Mode
	Text    string
	Options *Options
}

// OpenParen is an open paren on the stack, or a node of the result tree when
// ReturnParens is set. MaxChildIndent and ArgX are -1 when unset.
type OpenParen struct {
	LineNo         int
	X              int
	Ch             string
	IndentDelta    int
	MaxChildIndent int
	ArgX           int

	InputLineNo int
	InputX      int

	Closer   *Closer
	Children []*OpenParen
}

// Closer is the close paren written (or relocated) for its owning OpenParen.
type Closer struct {
	LineNo int
	X      int
	Ch     string
	Trail  *ParenTrail
}

// ParenTrail is the run of close parens remembered for one line.
type ParenTrail struct {
	LineNo int
	StartX int
	EndX   int
}

// TabStop is an indentation stop derived from an open paren on the tab-stop
// line. ArgX is -1 when the opener has no argument alignment point.
type TabStop struct {
	Ch     string
	X      int
	LineNo int
	ArgX   int
}

// ErrorName identifies a failure; the values are the stable kebab-case
// strings reported to callers.
type ErrorName string

const (
	ErrQuoteDanger         ErrorName = "quote-danger"
	ErrEolBackslash        ErrorName = "eol-backslash"
	ErrUnclosedQuote       ErrorName = "unclosed-quote"
	ErrUnclosedParen       ErrorName = "unclosed-paren"
	ErrUnmatchedCloseParen ErrorName = "unmatched-close-paren"
	ErrUnmatchedOpenParen  ErrorName = "unmatched-open-paren"
	ErrLeadingCloseParen   ErrorName = "leading-close-paren"
)

var errorMessages = map[ErrorName]string{
	ErrQuoteDanger:         "Quotes must balanced inside comment blocks.",
	ErrEolBackslash:        "Line cannot end in a hanging backslash.",
	ErrUnclosedQuote:       "String is missing a closing quote.",
	ErrUnclosedParen:       "Unclosed open-paren.",
	ErrUnmatchedCloseParen: "Unmatched close-paren.",
	ErrUnmatchedOpenParen:  "Unmatched open-paren.",
	ErrLeadingCloseParen:   "Line cannot lead with a close-paren.",
}

// Error reports why a transformation failed. X/LineNo are display
// coordinates into the reported text. Extra carries the companion
// unmatched-open-paren position when the failure is an unmatched closer.
type Error struct {
	Name    ErrorName
	Message string
	X       int
	LineNo  int

	Extra *Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d %s", e.LineNo+1, e.X+1, e.Message)
}

// Answer is the result of one transformation. CursorX/CursorLine are nil
// when no cursor was given; on failure without PartialResult they are the
// cursor as given.
type Answer struct {
	Text    string
	Success bool
	Error   *Error

	CursorX    *int
	CursorLine *int

	TabStops    []TabStop
	ParenTrails []ParenTrail
	Parens      []*OpenParen
}
