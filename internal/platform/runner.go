package platform

import (
	"context"
	"os/exec"
	"time"
)

// CommandRunner executes a system command and returns its standard output.
// Tests substitute fakes to simulate missing binaries, bad output, and slow
// probes.
type CommandRunner func(name string, arg ...string) ([]byte, error)

// NewRunner returns a CommandRunner that kills the command once timeout
// elapses. Probes must never hang the caller.
func NewRunner(timeout time.Duration) CommandRunner {
	return func(name string, arg ...string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return exec.CommandContext(ctx, name, arg...).Output()
	}
}
