// Package main provides the crossbuild CLI for cross-compiling release binaries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ochairo/crossbuild/internal/cli"
	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// The entry point for crossbuild.
//
// SIGINT and SIGTERM cancel the running command, which stops the current
// toolchain program. A failed toolchain program's exit status becomes the
// process exit status.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:])
	cancel()

	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(entities.ExitCode(err))
	}
}
