// File: cmd/layoutcore/main_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Setup Helpers ---

// resetMocks restores the original function implementations.
func resetMocks() {
	osWriteFile = os.WriteFile
	osExit = os.Exit
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 0, exitCode(fmt.Errorf("render: %w", context.Canceled)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestHandlePanic(t *testing.T) {
	defer resetMocks()

	t.Run("Panic Is Logged", func(t *testing.T) {
		var written string
		var code int
		osWriteFile = func(name string, data []byte, perm os.FileMode) error {
			assert.Equal(t, panicLogFile, name)
			written = string(data)
			return nil
		}
		osExit = func(c int) { code = c }

		func() {
			defer handlePanic()
			panic("layout exploded")
		}()

		assert.Equal(t, 2, code)
		assert.Contains(t, written, "panic: layout exploded")
		assert.Contains(t, written, "goroutine", "the stack trace is included")
	})

	t.Run("Log Write Failure", func(t *testing.T) {
		var code int
		osWriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only fs") }
		osExit = func(c int) { code = c }

		func() {
			defer handlePanic()
			panic("again")
		}()
		assert.Equal(t, 2, code)
	})

	t.Run("No Panic", func(t *testing.T) {
		osExit = func(int) { t.Fatal("exit must not be called without a panic") }
		func() {
			defer handlePanic()
		}()
	})
}

func TestMainRunsCommand(t *testing.T) {
	defer resetMocks()
	original := execute
	defer func() { execute = original }()

	var code = -1
	osExit = func(c int) { code = c }
	execute = func(ctx context.Context) error {
		require.NotNil(t, ctx)
		return errors.New("failed")
	}
	main()
	assert.Equal(t, 1, code)
}
