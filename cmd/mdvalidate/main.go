// Command mdvalidate validates a Markdown document against a
// Markdown-embedded schema from the command line, either once
// (`validate`) or continuously as the input file changes (`watch`).
package main

import (
	"os"

	"github.com/404wolf/mdvalidate/internal/clilog"
	"github.com/spf13/cobra"
)

func main() {
	logCfg := clilog.Config{}

	root := &cobra.Command{
		Use:           "mdvalidate",
		Short:         "Validate Markdown documents against Markdown-embedded schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	logCfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newValidateCommand(&logCfg))
	root.AddCommand(newWatchCommand(&logCfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
