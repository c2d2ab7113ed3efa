package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		msg := err.Error()
		if errors.Is(err, errors.ErrCodeTooLarge) {
			msg = errors.UserMessage(err)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
