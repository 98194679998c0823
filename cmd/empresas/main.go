// Command empresas runs the company registry batch jobs:
//
//	empresas ccm     normalize the municipal commercial registry listings
//	empresas rfb     normalize the federal tax registry extracts
//	empresas report  apply an analysis to a snapshot and export it
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
