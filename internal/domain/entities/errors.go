package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration reports an invalid recipe or an unmapped architecture
	ErrConfiguration = errors.New("configuration error")
	// ErrToolchain reports a failure to install a toolchain target
	ErrToolchain = errors.New("toolchain error")
	// ErrBuild reports a failed build invocation
	ErrBuild = errors.New("build error")
	// ErrStaging reports a failure while collecting or copying artifacts
	ErrStaging = errors.New("staging error")
)

// CommandError reports an external program that did not exit successfully.
// It matches its Kind with errors.Is.
type CommandError struct {
	Kind     error
	Program  string
	Args     []string
	ExitCode int // -1 when the program did not exit on its own
	Err      error
}

func (e *CommandError) Error() string {
	cmd := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	if e.ExitCode < 0 {
		return fmt.Sprintf("%v: %s: %v", e.Kind, cmd, e.Err)
	}
	return fmt.Sprintf("%v: %s exited with status %d", e.Kind, cmd, e.ExitCode)
}

func (e *CommandError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ExitCode returns the process exit status for err: the exit status of the
// failed program when there is one, 1 for any other error, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}
