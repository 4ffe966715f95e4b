// pkg/cmake/runner.go
package cmake

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Command is a single subprocess invocation
type Command struct {
	Args []string          // argv, Args[0] is the program
	Dir  string            // working directory, empty for the current one
	Env  map[string]string // added on top of the process environment
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Runner executes build commands one at a time
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewExecRunner returns a runner that streams child output to the terminal
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes cmd and fails on a non-zero exit status
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return fmt.Errorf("empty command")
	}

	dir := cmd.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	fmt.Fprintf(r.Stdout, "\n> Executing: %s\n", cmd)
	fmt.Fprintf(r.Stdout, "> in: %s\n\n", dir)

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	c.Env = os.Environ()
	for k, v := range cmd.Env {
		c.Env = append(c.Env, k+"="+v)
	}

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	r.Logger.Printf("finished: %s", cmd)
	return nil
}
