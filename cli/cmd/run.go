package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	parinfer "github.com/mlotysz/parinfer-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func optFlag(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func buildOptions() (*parinfer.Options, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	opts := &parinfer.Options{
		CursorX:            optFlag(cursorX),
		CursorLine:         optFlag(cursorLine),
		PrevCursorX:        optFlag(prevCursorX),
		PrevCursorLine:     optFlag(prevCursorLine),
		SelectionStartLine: optFlag(selectionStartLine),
		PartialResult:      partialResult || config.PartialResult,
		ForceBalance:       forceBalance || config.ForceBalance,
	}
	if prevTextFile != "" {
		data, err := os.ReadFile(prevTextFile)
		if err != nil {
			return nil, err
		}
		prev := string(data)
		opts.PrevText = &prev
	}
	return opts, nil
}

// runMode is the body shared by the indent/paren/smart commands.
func runMode(mode parinfer.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := logrus.StandardLogger()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		if len(args) > 1 {
			_ = cmd.Help()
			return fmt.Errorf("expected at most one file argument")
		}

		text, err := readInput(args)
		if err != nil {
			return err
		}
		opts, err := buildOptions()
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"mode":  mode.String(),
			"bytes": len(text),
		}).Debug("processing")

		answer := parinfer.Process(parinfer.Request{Mode: mode, Text: text, Options: opts})

		if dump {
			fmt.Println(repr.String(answer, repr.Indent("  ")))
			if !answer.Success {
				return fmt.Errorf("%s", answer.Error.Name)
			}
			return nil
		}

		if !answer.Success {
			logger.WithFields(logrus.Fields{
				"error": string(answer.Error.Name),
				"line":  answer.Error.LineNo,
				"x":     answer.Error.X,
			}).Error(answer.Error.Message)
			if opts.PartialResult {
				fmt.Print(answer.Text)
			}
			return fmt.Errorf("%s", answer.Error.Name)
		}

		fmt.Print(answer.Text)
		return nil
	}
}
