package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecourt/judge-engine/toolchain"
	"github.com/codecourt/judge-engine/workspace"
)

func TestCompileSuccessRemovesSource(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	spec := toolchain.Spec{
		SourceName:   "solution.txt",
		ArtifactName: "solution",
		CompileCmd:   []string{"sh", "-c", "cp solution.txt solution"},
		RunCmd:       []string{"./solution"},
	}

	err = Compile(context.Background(), spec, "anything", ws)
	require.NoError(t, err)

	_, statErr := os.Stat(ws.Path("solution.txt"))
	assert.True(t, os.IsNotExist(statErr), "source file should be removed after a successful compile")
	assert.FileExists(t, ws.Path("solution"))
}

func TestCompileFailureReturnsCompilationError(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	spec := toolchain.Spec{
		SourceName: "solution.txt",
		CompileCmd: []string{"sh", "-c", "echo 'syntax error' 1>&2; exit 1"},
		RunCmd:     []string{"./solution"},
	}

	err = Compile(context.Background(), spec, "bad code", ws)
	require.Error(t, err)

	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Stderr, "syntax error")

	// The source file is left in place so its diagnostics stay reproducible.
	assert.FileExists(t, ws.Path("solution.txt"))
}

func TestCompileMissingToolchainReturnsSystemError(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	spec := toolchain.Spec{
		SourceName: "solution.txt",
		CompileCmd: []string{filepath.Join(ws.Dir, "no-such-compiler-binary")},
		RunCmd:     []string{"./solution"},
	}

	err = Compile(context.Background(), spec, "anything", ws)
	require.Error(t, err)

	var sysErr *SystemError
	assert.ErrorAs(t, err, &sysErr)
}

func TestCompileInterpretedProbesInterpreter(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	spec := toolchain.Spec{
		SourceName: "solution.py",
		CompileCmd: nil,
		RunCmd:     []string{"true"}, // ignores its arguments and exits 0
	}

	err = Compile(context.Background(), spec, "print('hi')", ws)
	assert.NoError(t, err)
	// Interpreted languages keep the source file; there is nothing to remove it.
	assert.FileExists(t, ws.Path("solution.py"))
}

func TestCompileInterpreterMissingReturnsSystemError(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()

	spec := toolchain.Spec{
		SourceName: "solution.py",
		CompileCmd: nil,
		RunCmd:     []string{filepath.Join(ws.Dir, "no-such-interpreter")},
	}

	err = Compile(context.Background(), spec, "print('hi')", ws)
	require.Error(t, err)

	var sysErr *SystemError
	assert.ErrorAs(t, err, &sysErr)
}
