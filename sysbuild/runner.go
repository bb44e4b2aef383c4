package sysbuild

import (
	"bytes"
	"context"
	"os/exec"
)

// command describes one external tool invocation.
type command struct {
	Dir  string
	Env  []string
	Name string
	Args []string
}

// runCommand executes a command and returns its stdout and stderr separately.
// Tests replace it to observe invocations without running CMake or cgo.
var runCommand = func(ctx context.Context, c command) (stdout, stderr []byte, err error) {
	//nolint:gosec // Command and arguments are assembled by this package
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// runCombined executes a command and returns stdout followed by stderr.
func runCombined(ctx context.Context, c command) ([]byte, error) {
	stdout, stderr, err := runCommand(ctx, c)
	return append(stdout, stderr...), err
}
