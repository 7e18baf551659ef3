package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"registration_e2e/presentation/terminal"
)

func main() {
	termInterface, err := terminal.NewTerminalInterface()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = termInterface.Run(ctx)
	stop()
	termInterface.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
