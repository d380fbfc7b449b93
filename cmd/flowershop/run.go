package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

type application interface {
	Start(context.Context) error
	Stop(context.Context) error
	Done() <-chan os.Signal
}

// run starts app and blocks until ctx is cancelled or app asks to stop.
// It returns the process exit code.
func run(ctx context.Context, app application, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start application: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop application: %v\n", err)
		return 1
	}
	return 0
}
