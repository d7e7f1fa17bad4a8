package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/maturiz/internal/questionbank"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("maturiz", version)
		fmt.Println("question bank", questionbank.Default().Version())
	},
}
