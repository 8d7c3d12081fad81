// Package compiler writes a submission's source to its workspace and
// invokes the toolchain's compile command, or — for interpreted
// languages — probes that the interpreter is present.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/codecourt/judge-engine/toolchain"
	"github.com/codecourt/judge-engine/workspace"
)

// CompilationError means the compiler ran and rejected the program.
// Its Stderr is the diagnostic to surface to the caller.
type CompilationError struct {
	Stderr string
}

func (e *CompilationError) Error() string {
	return "compilation error"
}

// SystemError means the compiler (or interpreter) could not be invoked
// at all — the toolchain itself is missing, not the program being bad.
type SystemError struct {
	Message string
}

func (e *SystemError) Error() string {
	return e.Message
}

// Compile writes source to ws/spec.SourceName and, per spec.md §4.2:
//  1. For interpreted languages (no CompileCmd), probes interpreter
//     availability and returns *SystemError if it's missing.
//  2. Otherwise runs the compile command; a non-zero exit is a
//     *CompilationError carrying stderr.
//  3. On success, deletes the source file and leaves the artifact in
//     the workspace for the Process Supervisor to run.
func Compile(ctx context.Context, spec toolchain.Spec, source string, ws *workspace.Workspace) error {
	sourcePath := ws.Path(spec.SourceName)
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return &SystemError{Message: fmt.Sprintf("failed to write source: %v", err)}
	}

	if len(spec.CompileCmd) == 0 {
		return probeInterpreter(ctx, spec)
	}

	cmd := exec.CommandContext(ctx, spec.CompileCmd[0], spec.CompileCmd[1:]...)
	cmd.Dir = ws.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return &CompilationError{Stderr: stderr.String()}
		}
		return &SystemError{Message: fmt.Sprintf("failed to invoke compiler: %v", err)}
	}

	_ = os.Remove(sourcePath)
	return nil
}

// probeInterpreter runs a trivial program through the interpreter named
// by spec.RunCmd[0] to confirm it is on PATH and functional.
func probeInterpreter(ctx context.Context, spec toolchain.Spec) error {
	if len(spec.RunCmd) == 0 {
		return &SystemError{Message: "no run command configured"}
	}
	interpreter := spec.RunCmd[0]
	cmd := exec.CommandContext(ctx, interpreter, "-c", "print('test')")
	if err := cmd.Run(); err != nil {
		return &SystemError{Message: "interpreter not found"}
	}
	return nil
}
