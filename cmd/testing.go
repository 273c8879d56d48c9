package cmd

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// mu synchronisation is required:
// As TestExecute accepts a pointer to the cobra command,
// concurrent tests will create a race condition.
// This will also minimise the potential race condition
// when capturing & restoring os.Stdout & os.Stderr.
var mu sync.Mutex

// TestExecute is a helper that executes a cobra command and returns its output and error.
// Everything written to the command's out and err writers,
// as well as to os.Stdout and os.Stderr, is part of the output, in this order.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	cmdBuf := new(bytes.Buffer)
	command.SetOut(cmdBuf)
	command.SetErr(cmdBuf)

	storeStdout := os.Stdout
	storeStderr := os.Stderr

	defer func() {
		os.Stdout = storeStdout
		os.Stderr = storeStderr
	}()

	rOut, wOut, err := os.Pipe()
	assert.NoError(t, err)

	defer rOut.Close()

	rErr, wErr, err := os.Pipe()
	assert.NoError(t, err)

	defer rErr.Close()

	os.Stdout = wOut
	os.Stderr = wErr

	// drain the pipes while the command runs, so a large output can not block it.
	// Each pipe has its own buffer, so chunks of both can not interleave.
	var (
		wg     sync.WaitGroup
		outBuf bytes.Buffer
		errBuf bytes.Buffer
	)

	for _, p := range []struct {
		r   io.Reader
		buf *bytes.Buffer
	}{{rOut, &outBuf}, {rErr, &errBuf}} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = io.Copy(p.buf, p.r)
		}()
	}

	command.SetArgs(args)
	_, cmdErr := command.ExecuteC()

	assert.NoError(t, wOut.Close())
	assert.NoError(t, wErr.Close())
	wg.Wait()

	return cmdBuf.String() + outBuf.String() + errBuf.String(), cmdErr
}
