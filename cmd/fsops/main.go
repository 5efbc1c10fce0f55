// Command fsops runs policy-driven filesystem operations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lesiw.io/fsops/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := cli.Execute(ctx, cli.HostDeps(), os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fsops:", err)
		os.Exit(1)
	}
}
