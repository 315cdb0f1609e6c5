package toolrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// Command describes one external tool invocation.
type Command struct {
	Binary string
	Args   []string
	Dir    string
}

// Result carries the captured output streams of a completed invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Runner abstracts supervised command execution for testability.
type Runner interface {
	Run(ctx context.Context, command Command) (Result, error)
}

// StartError reports a tool that could not be launched at all.
type StartError struct {
	Binary string
	Err    error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Binary, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// ExitError reports a tool that ran and exited with a non-zero status. The
// captured stderr text is preserved verbatim for operator diagnosis.
type ExitError struct {
	Binary string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Binary, e.Code, tail(detail, 12))
}

// Supervisor runs commands as process-group leaders so that cancellation can
// reap the entire child tree, not just the immediate process.
type Supervisor struct{}

// NewSupervisor constructs the production runner.
func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// Run executes the command, draining stdout and stderr concurrently while
// waiting for exit. When ctx is cancelled the child's process group is killed
// (best effort) and the context error is returned; a cancellation never
// surfaces as a tool failure.
func (s *Supervisor) Run(ctx context.Context, command Command) (Result, error) {
	if strings.TrimSpace(command.Binary) == "" {
		return Result{}, &StartError{Binary: command.Binary, Err: fmt.Errorf("binary name empty")}
	}

	cmd := exec.Command(command.Binary, command.Args...) //nolint:gosec
	cmd.Dir = command.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, &StartError{Binary: command.Binary, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, &StartError{Binary: command.Binary, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return Result{}, &StartError{Binary: command.Binary, Err: err}
	}

	var stdout, stderr bytes.Buffer
	var group errgroup.Group
	group.Go(func() error { return drain(&stdout, stdoutPipe) })
	group.Go(func() error { return drain(&stderr, stderrPipe) })

	done := make(chan error, 1)
	go func() {
		drainErr := group.Wait()
		waitErr := cmd.Wait()
		if waitErr == nil {
			waitErr = drainErr
		}
		done <- waitErr
	}()

	select {
	case waitErr := <-done:
		result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
		if waitErr == nil {
			return result, nil
		}
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			return result, &ExitError{
				Binary: command.Binary,
				Code:   exitErr.ExitCode(),
				Stderr: result.Stderr,
			}
		}
		return result, fmt.Errorf("wait %s: %w", command.Binary, waitErr)
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		return Result{Stdout: stdout.String(), Stderr: stderr.String()}, ctx.Err()
	}
}

// killProcessGroup terminates the child's entire process group. Failures are
// swallowed: the cancellation outcome takes precedence over termination
// success.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pgid, err := unix.Getpgid(cmd.Process.Pid)
	if err != nil {
		_ = cmd.Process.Kill()
		return
	}
	_ = unix.Kill(-pgid, unix.SIGKILL)
}

func drain(dst *bytes.Buffer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

func tail(text string, lines int) string {
	split := strings.Split(text, "\n")
	if len(split) <= lines {
		return text
	}
	return strings.Join(split[len(split)-lines:], "\n")
}

var _ Runner = (*Supervisor)(nil)
