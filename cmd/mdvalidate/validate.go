package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/404wolf/mdvalidate"
	"github.com/404wolf/mdvalidate/internal/clilog"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

type validateFlags struct {
	fastFail bool
	quiet    bool
	output   string
	debug    bool
}

func newValidateCommand(logCfg *clilog.Config) *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <schema> <input> [captures-output]",
		Short: "Validate one Markdown input document against one Markdown schema",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := clilog.New(cmd.ErrOrStderr(), *logCfg)

			schemaSrc, err := readArg(args[0])
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}
			inputSrc, err := readArg(args[1])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			report := mdvalidate.Validate(schemaSrc, inputSrc, true)
			log.Debug("validated", "ok", report.OK, "errors", len(report.Errors))

			if flags.debug {
				spew.Fdump(cmd.ErrOrStderr(), report.Captures)
			}

			if !flags.quiet {
				for _, e := range report.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
					if flags.fastFail {
						break
					}
				}
			}

			outPath := flags.output
			if outPath == "" && len(args) == 3 {
				outPath = args[2]
			}
			if outPath != "" {
				if err := writeCaptures(cmd, outPath, report); err != nil {
					return fmt.Errorf("writing captures: %w", err)
				}
			}

			if !report.OK {
				return fmt.Errorf("%d validation error(s)", len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.fastFail, "fast-fail", "f", false, "stop printing after the first error")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress error output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write captured values as JSON to this path (- for stdout)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "dump the raw capture tree before reporting errors")

	return cmd
}

func readArg(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeCaptures(cmd *cobra.Command, path string, report *mdvalidate.Report) error {
	b, err := json.MarshalIndent(report.Captures, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
