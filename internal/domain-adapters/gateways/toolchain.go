package gateways

import (
	"context"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// RustupToolchain installs compilation targets with rustup
type RustupToolchain struct {
	runner     *CommandRunner
	program    string
	workingDir string
}

// NewRustupToolchain creates a toolchain gateway invoking program (normally "rustup")
func NewRustupToolchain(runner *CommandRunner, program, workingDir string) *RustupToolchain {
	if program == "" {
		program = "rustup"
	}
	return &RustupToolchain{
		runner:     runner,
		program:    program,
		workingDir: workingDir,
	}
}

// AddTarget runs "rustup target add <triple>"; rustup treats an installed
// target as success
func (t *RustupToolchain) AddTarget(ctx context.Context, triple entities.Triple) error {
	args := []string{"target", "add", string(triple)}
	result := t.runner.Run(ctx, RunConfig{
		Program:     t.program,
		Args:        args,
		WorkingDir:  t.workingDir,
		Description: "add target " + string(triple),
	})
	if !result.Success {
		return &entities.CommandError{
			Kind:     entities.ErrToolchain,
			Program:  t.program,
			Args:     args,
			ExitCode: result.ExitCode,
			Err:      result.Error,
		}
	}
	return nil
}
