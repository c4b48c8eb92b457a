package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/mindmap/internal/cli"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps invalid documents to 2 so scripts can tell them apart from
// I/O and internal failures.
func exitCode(err error) int {
	switch mmerrors.GetCode(err) {
	case mmerrors.ErrCodeValidation, mmerrors.ErrCodeInvalidInput, mmerrors.ErrCodeInvalidFormat:
		return 2
	default:
		return 1
	}
}
