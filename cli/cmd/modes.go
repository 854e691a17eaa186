package cmd

import (
	parinfer "github.com/mlotysz/parinfer-go"
	"github.com/spf13/cobra"
)

var (
	indentCmd = &cobra.Command{
		Use:   "indent [file]",
		Short: "Infer close parens from indentation",
		RunE:  runMode(parinfer.Indent),
	}

	parenCmd = &cobra.Command{
		Use:   "paren [file]",
		Short: "Infer indentation from paren structure",
		RunE:  runMode(parinfer.Paren),
	}

	smartCmd = &cobra.Command{
		Use:   "smart [file]",
		Short: "Pick between indent and paren behavior based on cursor context",
		RunE:  runMode(parinfer.Smart),
	}
)

func init() {
	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(parenCmd)
	rootCmd.AddCommand(smartCmd)
}
