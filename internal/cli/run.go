package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// ExitCode is the process exit status
type ExitCode int

const (
	ExitOK      ExitCode = 0
	ExitFailure ExitCode = 1
)

// Run executes the command line and maps the outcome to an exit code.
// Fatal errors are written to stderr as "Error: <message>".
func Run(args []string, stdout, stderr io.Writer) ExitCode {
	return execute(NewRootCmd(), args, stdout, stderr)
}

func execute(rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) ExitCode {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}
