package gateways

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ochairo/crossbuild/internal/domain/interfaces"
)

func newTestRunner(stdout, stderr *bytes.Buffer) *CommandRunner {
	return NewCommandRunner(&interfaces.NoOpLogger{}, 0).WithOutput(stdout, stderr)
}

func TestCommandRunner_Run_Success(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	result := r.Run(context.Background(), RunConfig{
		Program:     "/bin/sh",
		Args:        []string{"-c", "echo 'Hello, World!'"},
		Description: "test echo",
	})

	if !result.Success {
		t.Errorf("Run() failed: %v", result.Error)
	}

	if result.ExitCode != 0 {
		t.Errorf("Run() exit code = %d, want 0", result.ExitCode)
	}

	if stdout.String() != "Hello, World!\n" {
		t.Errorf("Run() stdout = %q, want %q", stdout.String(), "Hello, World!\n")
	}
}

func TestCommandRunner_Run_Failure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	result := r.Run(context.Background(), RunConfig{
		Program:     "/bin/sh",
		Args:        []string{"-c", "echo oops >&2; exit 42"},
		Description: "test failure",
	})

	if result.Success {
		t.Error("Run() should have failed")
	}

	if result.ExitCode != 42 {
		t.Errorf("Run() exit code = %d, want 42", result.ExitCode)
	}

	if stderr.String() != "oops\n" {
		t.Errorf("Run() stderr = %q, want %q", stderr.String(), "oops\n")
	}
}

func TestCommandRunner_Run_ProgramNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	result := r.Run(context.Background(), RunConfig{
		Program: "crossbuild-no-such-program",
	})

	if result.Success {
		t.Error("Run() should have failed")
	}
	if result.ExitCode != -1 {
		t.Errorf("Run() exit code = %d, want -1", result.ExitCode)
	}
	if result.Error == nil {
		t.Error("Run() should have returned an error")
	}
}

func TestCommandRunner_Run_WithEnvironment(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	result := r.Run(context.Background(), RunConfig{
		Program: "/bin/sh",
		Args:    []string{"-c", "echo $TEST_VAR"},
		Env: map[string]string{
			"TEST_VAR": "test_value",
		},
		Description: "test env vars",
	})

	if !result.Success {
		t.Errorf("Run() failed: %v", result.Error)
	}

	if stdout.String() != "test_value\n" {
		t.Errorf("Run() stdout = %q, want %q", stdout.String(), "test_value\n")
	}
}

func TestCommandRunner_Run_Timeout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := NewCommandRunner(nil, 100*time.Millisecond).WithOutput(&stdout, &stderr)

	result := r.Run(context.Background(), RunConfig{
		Program:     "/bin/sh",
		Args:        []string{"-c", "sleep 5"},
		Description: "test timeout",
	})

	if result.Success {
		t.Error("Run() should have timed out")
	}

	if result.ExitCode != -1 {
		t.Errorf("Run() exit code = %d, want -1", result.ExitCode)
	}

	if result.Error == nil {
		t.Error("Run() should have returned an error")
	}
}

func TestCommandRunner_Run_Cancelled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := r.Run(ctx, RunConfig{
		Program: "/bin/sh",
		Args:    []string{"-c", "exit 0"},
	})

	if result.Success {
		t.Error("Run() should not succeed with a cancelled context")
	}
}

func TestCommandRunner_Run_WorkingDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result := r.Run(context.Background(), RunConfig{
		Program:     "/bin/sh",
		Args:        []string{"-c", "ls test.txt"},
		WorkingDir:  tempDir,
		Description: "test working directory",
	})

	if !result.Success {
		t.Errorf("Run() failed: %v", result.Error)
	}

	if stdout.String() != "test.txt\n" {
		t.Errorf("Run() stdout = %q, want %q", stdout.String(), "test.txt\n")
	}
}

func TestCommandRunner_Run_LogsCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := &interfaces.MemoryLogger{}
	r := NewCommandRunner(logger, 0).WithOutput(&stdout, &stderr)

	r.Run(context.Background(), RunConfig{
		Program:     "/bin/sh",
		Args:        []string{"-c", "true"},
		Description: "noop",
	})

	entries := logger.Messages("running command")
	if len(entries) != 1 {
		t.Fatalf("logged %d 'running command' entries, want 1", len(entries))
	}
	if got := entries[0].Fields["command"]; got != "/bin/sh -c true" {
		t.Errorf("command field = %v, want %q", got, "/bin/sh -c true")
	}
}
