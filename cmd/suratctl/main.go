package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"suratku_backend/internals/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cli.DefaultOpener).ExecuteContext(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}
