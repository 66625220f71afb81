package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/tameorm/tame/cli"
	_ "github.com/tameorm/tame/internal/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cli.Options{}).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
