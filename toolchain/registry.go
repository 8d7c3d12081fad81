// Package toolchain maps a language tag to the compile/run command
// templates and on-disk filenames a submission in that language needs.
package toolchain

import (
	"fmt"
	"runtime"

	"github.com/codecourt/judge-engine/model"
)

// Spec describes how to build and run a submission in one language.
type Spec struct {
	// SourceName is the filename the Compiler writes the source to,
	// relative to the workspace directory.
	SourceName string
	// ArtifactName is the filename the compiled (or interpreted) program
	// is invoked as, relative to the workspace directory.
	ArtifactName string
	// CompileCmd is the argv used to compile SourceName into
	// ArtifactName. Empty for interpreted languages.
	CompileCmd []string
	// RunCmd is the argv used to execute ArtifactName.
	RunCmd []string
	// CleanupGlobs lists additional workspace-relative paths the
	// Workspace must remove on teardown (bytecode directories,
	// platform-suffixed binaries, and the like).
	CleanupGlobs []string
}

func pythonInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// Resolve returns the Spec for tag, or an error if the language isn't
// recognized.
func Resolve(tag model.Language) (Spec, error) {
	switch tag {
	case model.LanguageC:
		return Spec{
			SourceName:   "solution.c",
			ArtifactName: "solution",
			CompileCmd:   []string{"gcc", "solution.c", "-o", "solution"},
			RunCmd:       []string{"./solution"},
			CleanupGlobs: []string{"solution", "solution.exe"},
		}, nil
	case model.LanguageCPP:
		return Spec{
			SourceName:   "solution.cpp",
			ArtifactName: "solution",
			CompileCmd:   []string{"g++", "solution.cpp", "-o", "solution"},
			RunCmd:       []string{"./solution"},
			CleanupGlobs: []string{"solution", "solution.exe"},
		}, nil
	case model.LanguageGo:
		return Spec{
			SourceName:   "solution.go",
			ArtifactName: "solution",
			CompileCmd:   []string{"go", "build", "-o", "solution", "solution.go"},
			RunCmd:       []string{"./solution"},
			CleanupGlobs: []string{"solution", "solution.exe"},
		}, nil
	case model.LanguageJava:
		return Spec{
			SourceName:   "Main.java",
			ArtifactName: "Main.class",
			CompileCmd:   []string{"javac", "Main.java"},
			RunCmd:       []string{"java", "Main"},
			CleanupGlobs: []string{"Main.class", "Main.java"},
		}, nil
	case model.LanguagePython:
		return Spec{
			SourceName:   "solution.py",
			ArtifactName: "solution.py",
			CompileCmd:   nil, // interpreted: Compiler only probes the interpreter
			RunCmd:       []string{pythonInterpreter(), "solution.py"},
			CleanupGlobs: []string{"solution.py", "__pycache__"},
		}, nil
	default:
		return Spec{}, fmt.Errorf("unsupported language: %s", tag)
	}
}
