package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"syscheck/internal/system"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitInterrupted = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer, opts ...probeOption) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(opts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if isInterrupted(err) {
			fmt.Fprintln(stderr, "syscheck: fatal error: exiting on user request")
			return exitInterrupted
		}
		fmt.Fprintf(stderr, "syscheck: fatal error: %v\n", err)
		return exitFatal
	}
	return exitOK
}

func isInterrupted(err error) bool {
	return errors.Is(err, system.ErrInterrupted) || errors.Is(err, context.Canceled)
}
