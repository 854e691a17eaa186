package parinfer

// IndentMode infers close parens from indentation.
func IndentMode(text string, opts *Options) *Answer {
	return processText(text, opts, Indent, false).publicResult()
}

// ParenMode infers indentation from paren structure.
func ParenMode(text string, opts *Options) *Answer {
	return processText(text, opts, Paren, false).publicResult()
}

// SmartMode runs indent mode with edit-aware behaviors; an active selection
// disables them and reverts to plain indent mode.
func SmartMode(text string, opts *Options) *Answer {
	smart := opts == nil || opts.SelectionStartLine == nil
	return processText(text, opts, Indent, smart).publicResult()
}

// Process dispatches a Request. When the options carry PrevText and no
// explicit changes, the single differing span is synthesized first.
func Process(req Request) *Answer {
	opts := req.Options
	if opts != nil && opts.PrevText != nil && len(opts.Changes) == 0 {
		if change := ComputeTextChange(*opts.PrevText, req.Text); change != nil {
			withChange := *opts
			withChange.Changes = []Change{*change}
			opts = &withChange
		}
	}

	switch req.Mode {
	case Paren:
		return ParenMode(req.Text, opts)
	case Smart:
		return SmartMode(req.Text, opts)
	default:
		return IndentMode(req.Text, opts)
	}
}
