// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"os"
	"path/filepath"
	"time"

	"charmpack/pkg/bundle"

	"github.com/charmbracelet/log"
)

// Options carries the per-invocation inputs for packing a bundle. They are
// read-only for the packing core.
type Options struct {
	// DirPath is the absolute project root.
	DirPath string
	// StartedAt is the build start time recorded in the manifest.
	StartedAt time.Time
	// Prime lists the user-declared glob patterns selecting extra files.
	Prime []string
}

// Service packs bundle projects. It owns the operation's logging side
// channel; everything else is stateless per invocation.
type Service struct {
	logger *log.Logger
}

// NewService returns a Service reporting through the given logger.
func NewService(logger *log.Logger) *Service {
	return &Service{logger: logger}
}

// PackBundle packs the bundle project described by opts and returns the
// path of the written archive, <name>.zip in the project root.
//
// The synthesized manifest only exists on disk between here and the
// archive write; the deferred removal guarantees it is gone on every exit
// path, so a failed run never litters the project tree.
func (s *Service) PackBundle(opts Options) (zipPath string, err error) {
	desc, err := bundle.LoadDescriptor(opts.DirPath)
	if err != nil {
		return "", err
	}

	manifestPath, err := bundle.CreateManifest(opts.DirPath, opts.StartedAt)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(manifestPath)
	}()

	paths, err := GetPathsToInclude(s.logger, opts.DirPath, MandatoryFiles, opts.Prime)
	if err != nil {
		return "", err
	}

	zipPath = filepath.Join(opts.DirPath, desc.Name+".zip")
	if err = BuildZip(zipPath, opts.DirPath, paths); err != nil {
		return "", err
	}

	s.logger.Infof("Created '%s'.", zipPath)
	return zipPath, nil
}
