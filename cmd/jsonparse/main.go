// Command jsonparse parses and validates JSON documents with the strict
// json-parse parser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lattice-substrate/json-parse/internal/config"
	"github.com/lattice-substrate/json-parse/jsonerr"
)

const (
	exitSuccess  = 0
	exitInvalid  = 2
	exitInternal = 10
)

// exitError carries the process exit code chosen by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func invalidf(format string, args ...any) error {
	return &exitError{code: exitInvalid, err: fmt.Errorf(format, args...)}
}

func internalf(format string, args ...any) error {
	return &exitError{code: exitInternal, err: fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		return writeClassifiedError(stderr, err)
	}
	return exitSuccess
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonparse",
		Short: "Strict RFC 7159 JSON parser and validator.",
		Example: `jsonparse parse document.json
jsonparse parse --summary - < document.json
jsonparse validate --workers 8 --metrics-file run.prom data/*.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Usage(); err != nil {
				return internalf("write usage: %v", err)
			}
			return invalidf("missing command")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitInvalid, err: err}
	})
	config.RegisterGlobalFlags(root.PersistentFlags())

	root.AddCommand(newParseCommand(), newValidateCommand())
	return root
}

// writeClassifiedError reports err on stderr and returns the exit code for
// it. Parse failures exit with their kind's code; errors raised by argument
// parsing are usage errors.
func writeClassifiedError(stderr io.Writer, err error) int {
	code := exitInvalid
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	} else if kind, ok := jsonerr.KindOf(err); ok {
		code = kind.ExitCode()
	}
	if werr := writef(stderr, "error: %v\n", err); werr != nil {
		return exitInternal
	}
	return code
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}
