package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/footprint-tools/unilang/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], cli.StdEnv()))
}

func run(args []string, env cli.Env) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Run(ctx, args, env)
}
