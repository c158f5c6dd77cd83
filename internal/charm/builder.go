// SPDX-License-Identifier: MPL-2.0

// Package charm is the boundary to the external charm build toolchain.
//
// Packing a charm is delegated wholesale: this package only normalizes the
// command-line inputs into BuildArgs and hands them to a Builder, which
// produces the charm archive as its own side effect. The packaging core
// never looks inside the build; tests substitute a stub Builder.
package charm

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// DefaultBuilderBinary is the external charm build executable.
const DefaultBuilderBinary = "charm-build"

// BuildArgs is the normalized argument structure handed to the builder.
type BuildArgs struct {
	// FromDir is the absolute charm project root.
	FromDir string
	// Requirement is the path of a requirements file, or empty.
	Requirement string
	// Entrypoint is the path of the charm entrypoint, or empty.
	Entrypoint string
	// BasesIndices selects which declared bases to build; empty means all.
	BasesIndices []int
}

// Builder runs the external charm build, producing its archive as a side
// effect. Implementations own their entire process; callers only see the
// returned error.
type Builder interface {
	Run(args BuildArgs) error
}

// BuildFailedError reports a builder process that ran and exited non-zero.
type BuildFailedError struct {
	ExitCode int
}

// Error implements the error interface for BuildFailedError.
func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("charm build failed with exit code %d", e.ExitCode)
}

// ProcessArgs validates and normalizes the raw command-line inputs. The
// project directory is made absolute; requirement and entrypoint paths, if
// given, must point at existing files.
func ProcessArgs(args BuildArgs) (BuildArgs, error) {
	fromDir, err := filepath.Abs(args.FromDir)
	if err != nil {
		return BuildArgs{}, err
	}
	args.FromDir = fromDir

	if args.Requirement != "" {
		if args.Requirement, err = usefulFilepath(args.Requirement); err != nil {
			return BuildArgs{}, err
		}
	}
	if args.Entrypoint != "" {
		if args.Entrypoint, err = usefulFilepath(args.Entrypoint); err != nil {
			return BuildArgs{}, err
		}
	}

	return args, nil
}

// usefulFilepath resolves a user-supplied path and checks it is an existing
// file, returning the absolute path.
func usefulFilepath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("Cannot access '%s'.", abs)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("'%s' is not a file.", abs)
	}

	return abs, nil
}

// CommandBuilder invokes the external charm build executable.
type CommandBuilder struct {
	binary string
}

// NewCommandBuilder returns a builder running the default executable.
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{binary: DefaultBuilderBinary}
}

// Run executes the charm build with the normalized arguments, streaming its
// output through this process.
func (b *CommandBuilder) Run(args BuildArgs) error {
	argv := []string{"--from", args.FromDir}
	if args.Requirement != "" {
		argv = append(argv, "--requirement", args.Requirement)
	}
	if args.Entrypoint != "" {
		argv = append(argv, "--entrypoint", args.Entrypoint)
	}
	for _, idx := range args.BasesIndices {
		argv = append(argv, "--bases-index", strconv.Itoa(idx))
	}

	cmd := exec.Command(b.binary, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &BuildFailedError{ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run charm builder: %w", err)
	}
	return nil
}
