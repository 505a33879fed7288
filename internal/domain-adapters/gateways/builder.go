package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// CargoBuilder compiles release binaries with cargo, or with cross for
// targets the host toolchain cannot build
type CargoBuilder struct {
	runner     *CommandRunner
	toolchain  entities.ToolchainConfig
	workingDir string
}

// NewCargoBuilder creates a builder running in the project directory
func NewCargoBuilder(runner *CommandRunner, toolchain entities.ToolchainConfig, workingDir string) *CargoBuilder {
	return &CargoBuilder{
		runner:     runner,
		toolchain:  toolchain,
		workingDir: workingDir,
	}
}

// BuildArgs returns the build arguments for a release build of triple
func BuildArgs(triple entities.Triple) []string {
	return []string{"build", "--release", "--target=" + string(triple)}
}

// Build runs a release build for the plan's triple with CARGO_TARGET_DIR set
// to the plan's target dir. A failed build is not retried.
func (b *CargoBuilder) Build(ctx context.Context, plan entities.PlatformPlan) error {
	program, ok := b.toolchain.Program(plan.Builder)
	if !ok {
		return fmt.Errorf("%w: no program configured for %s builds", entities.ErrConfiguration, plan.Builder)
	}

	var env map[string]string
	if plan.TargetDir != "" {
		env = map[string]string{"CARGO_TARGET_DIR": plan.TargetDir}
	}

	args := BuildArgs(plan.Triple)
	result := b.runner.Run(ctx, RunConfig{
		Program:     program,
		Args:        args,
		WorkingDir:  b.workingDir,
		Env:         env,
		Description: fmt.Sprintf("%s build %s", plan.Builder, plan.Triple),
	})
	if !result.Success {
		return &entities.CommandError{
			Kind:     entities.ErrBuild,
			Program:  program,
			Args:     args,
			ExitCode: result.ExitCode,
			Err:      result.Error,
		}
	}
	return nil
}
