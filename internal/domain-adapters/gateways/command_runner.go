// Package gateways implements the domain gateway interfaces on top of external
// programs and the local filesystem.
package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ochairo/crossbuild/internal/domain/interfaces"
)

// CommandRunner runs toolchain programs, streaming their output to the console
type CommandRunner struct {
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
	logger  interfaces.Logger
}

// NewCommandRunner creates a runner. A zero timeout lets commands run until
// they exit or the context is cancelled.
func NewCommandRunner(logger interfaces.Logger, timeout time.Duration) *CommandRunner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CommandRunner{
		timeout: timeout,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  logger,
	}
}

// WithOutput redirects child process output
func (r *CommandRunner) WithOutput(stdout, stderr io.Writer) *CommandRunner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// RunConfig describes a single program invocation
type RunConfig struct {
	Program     string
	Args        []string
	WorkingDir  string
	Env         map[string]string
	Description string
}

// RunResult contains the result of a program invocation
type RunResult struct {
	Success  bool
	ExitCode int
	Duration time.Duration
	Error    error
}

// Run executes the program and waits for it to finish
func (r *CommandRunner) Run(ctx context.Context, config RunConfig) *RunResult {
	startTime := time.Now()
	result := &RunResult{}

	timeout := r.timeout
	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	//nolint:gosec // G204: Program and arguments come from the release recipe
	cmd := exec.CommandContext(execCtx, config.Program, config.Args...)
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}
	if len(config.Env) > 0 {
		env := os.Environ()
		for key, value := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Info("running command",
		interfaces.F("step", config.Description),
		interfaces.F("command", strings.TrimSpace(config.Program+" "+strings.Join(config.Args, " "))),
		interfaces.F("dir", cmd.Dir),
	)

	err := cmd.Run()
	result.Duration = time.Since(startTime)

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.Error = fmt.Errorf("command timeout after %v", timeout)
			result.ExitCode = -1
		} else if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		r.logger.Debug("command failed",
			interfaces.F("step", config.Description),
			interfaces.F("exit_code", result.ExitCode),
			interfaces.F("duration", result.Duration),
		)
		return result
	}

	result.Success = true
	result.ExitCode = 0
	r.logger.Debug("command finished",
		interfaces.F("step", config.Description),
		interfaces.F("duration", result.Duration),
	)
	return result
}
