package cmd

import (
	"fmt"

	parinfer "github.com/mlotysz/parinfer-go"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the library version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(parinfer.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
