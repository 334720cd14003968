// Package main provides the CLI entrypoint for calculator.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/textcalc/internal/calc"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

var errUsage = errors.New("please provide a mathematical expression")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code. Failures are
// reported on stdout as a single "Error:" line.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if _, werr := fmt.Fprintf(stdout, "Error: %v\n", err); werr != nil {
			logErrf(stderr, "failed to write error: %v\n", werr)
		}
		return exitFailure
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculator <expression>",
		Short: "Evaluate a restricted arithmetic expression",
		Long: "Evaluate an arithmetic expression. '^' is read as '**'. Available names: " +
			fmt.Sprint(calc.Functions().Names()),
		Args:               exactlyOneExpression,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runEvaluate,
	}
}

// exactlyOneExpression accepts a single argument. Expressions such as "-5+3" are
// never read as flags because flag parsing is disabled.
func exactlyOneExpression(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	result, err := calc.Evaluate(args[0])
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func logErrf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
