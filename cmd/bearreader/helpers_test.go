package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/fwojciec/bearreader/cmd/bearreader"
)

// testDeps returns Dependencies writing to fresh buffers.
func testDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}
