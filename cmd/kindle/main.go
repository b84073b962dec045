// Package main is the entry point for the kindle profile selector.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/cmd/kindle/commands"
	"go.trai.ch/kindle/internal/app"
	"go.trai.ch/kindle/internal/core/domain"
	_ "go.trai.ch/kindle/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, graftProvider))
}

func graftProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available when initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	if l, ok := components.Logger.(interface{ SetOutput(w io.Writer) }); ok {
		l.SetOutput(stderr)
	}
	components.App.WithOutput(stdout)
	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Problems were already printed with the module reports.
		if errors.Is(err, domain.ErrModuleProblems) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
