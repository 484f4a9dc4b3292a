package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lattice-substrate/json-parse/internal/config"
	"github.com/lattice-substrate/json-parse/internal/logging"
	"github.com/lattice-substrate/json-parse/internal/runner"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file|->...",
		Short: "Validate JSON documents concurrently.",
		Long: `Validate each input and print one tab-separated line per input:

  valid    <input>  <root kind>
  invalid  <input>  <failure kind>  <byte offset>
  error    <input>  <read error>

Lines keep the order of the inputs. Per-input logs go to standard error.
Exit codes: 0 when every input is valid, 2 otherwise, 10 on internal failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return invalidf("%v", err)
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return invalidf("%v", err)
			}

			reg := prometheus.NewRegistry()
			r := runner.New(cfg, cmd.InOrStdin(), logger, reg)
			s, err := r.Run(cmd.Context(), args)
			if err != nil {
				return internalf("validate: %v", err)
			}

			if err := writeReport(cmd.OutOrStdout(), s); err != nil {
				return internalf("writing output: %v", err)
			}
			if cfg.MetricsFile != "" {
				if err := runner.WriteMetricsFile(cfg.MetricsFile, reg); err != nil {
					return internalf("%v", err)
				}
			}

			if failed := s.Invalid + s.Errors; failed > 0 {
				return invalidf("%d of %d inputs failed validation", failed, len(s.Results))
			}
			return nil
		},
	}
	config.RegisterValidateFlags(cmd.Flags())
	return cmd
}

func writeReport(w io.Writer, s runner.Summary) error {
	for _, res := range s.Results {
		var err error
		switch {
		case res.ReadErr != nil:
			err = writef(w, "error\t%s\t%v\n", res.Input, res.ReadErr)
		case res.ParseErr != nil:
			err = writef(w, "invalid\t%s\t%s\t%d\n", res.Input, res.Kind, res.Offset)
		default:
			err = writef(w, "valid\t%s\t%s\n", res.Input, res.Root)
		}
		if err != nil {
			return fmt.Errorf("report %s: %w", res.Input, err)
		}
	}
	return nil
}
