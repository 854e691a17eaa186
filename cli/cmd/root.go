package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "parinfer",
		Short:        "parinfer",
		SilenceUsage: true,
		Long:         `CLI for the parinfer text transformation: keeps parens and indentation of Clojure code in sync. Reads a file argument or stdin, writes the transformed text to stdout.`,
	}

	cursorX            int
	cursorLine         int
	prevCursorX        int
	prevCursorLine     int
	selectionStartLine int
	partialResult      bool
	forceBalance       bool
	prevTextFile       string
	dump               bool
	verbose            bool
)

// Execute executes the root command.
func Execute() error {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cursorX, "cursor-x", -1, "cursor column in display cells (0-based)")
	pf.IntVar(&cursorLine, "cursor-line", -1, "cursor line (0-based)")
	pf.IntVar(&prevCursorX, "prev-cursor-x", -1, "cursor column before the edit")
	pf.IntVar(&prevCursorLine, "prev-cursor-line", -1, "cursor line before the edit")
	pf.IntVar(&selectionStartLine, "selection-start-line", -1, "first line of an active selection")
	pf.BoolVar(&partialResult, "partial-result", false, "on failure, emit the partially transformed text")
	pf.BoolVar(&forceBalance, "force-balance", false, "aggressively balance parens")
	pf.StringVar(&prevTextFile, "prev-text-file", "", "path to the previous version of the text; a single change is inferred from it")
	pf.BoolVar(&dump, "dump", false, "dump the full answer instead of just the text")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return rootCmd.Execute()
}
