// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TypeUnset means the project file did not declare a kind (or is absent).
	TypeUnset ProjectType = ""
	// TypeCharm projects are delegated to the external charm build toolchain.
	TypeCharm ProjectType = "charm"
	// TypeBundle projects are packed directly from their declared files.
	TypeBundle ProjectType = "bundle"
)

// ErrInvalidProjectType is the sentinel error wrapped by InvalidProjectTypeError.
var ErrInvalidProjectType = errors.New("invalid project type")

type (
	// ProjectType is the kind of project being packed.
	ProjectType string

	// InvalidProjectTypeError is returned when the project file declares an
	// unrecognized kind. It wraps ErrInvalidProjectType for errors.Is() compatibility.
	InvalidProjectTypeError struct {
		Value ProjectType
	}

	// Project holds the per-invocation facts about the project being packed.
	Project struct {
		// DirPath is the absolute project root; all selection and archive
		// paths are relative to it.
		DirPath string
		// StartedAt is the build start time recorded in the manifest.
		StartedAt time.Time
		// ConfigProvided is true when a charmpack.yaml was actually read.
		ConfigProvided bool
	}

	// Config is the fully loaded project configuration. It is read-only for
	// the packing core.
	Config struct {
		// Type is the declared project kind (may be TypeUnset).
		Type ProjectType
		// Prime lists the user-declared glob patterns selecting extra files.
		Prime []string
		// Project describes the project root and build start time.
		Project Project
	}
)

// Error implements the error interface for InvalidProjectTypeError.
func (e *InvalidProjectTypeError) Error() string {
	return fmt.Sprintf("%v: %q (must be 'charm' or 'bundle')", ErrInvalidProjectType, string(e.Value))
}

// Unwrap returns the sentinel for errors.Is() checks.
func (e *InvalidProjectTypeError) Unwrap() error {
	return ErrInvalidProjectType
}

// valid reports whether the type is one of the recognized kinds.
func (t ProjectType) valid() bool {
	return t == TypeUnset || t == TypeCharm || t == TypeBundle
}

// EffectiveType resolves the declared kind, defaulting an unset type to charm.
func (c *Config) EffectiveType() ProjectType {
	if c.Type == TypeUnset {
		return TypeCharm
	}
	return c.Type
}
