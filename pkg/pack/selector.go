// SPDX-License-Identifier: MPL-2.0

// Package pack implements the bundle packaging core: file selection,
// archive building, and the manifest lifecycle around them.
//
// Selection and archiving are deliberately separate. GetPathsToInclude owns
// ordering and deduplication; BuildZip writes exactly what it is given, in
// the order it is given.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"charmpack/pkg/bundle"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// MandatoryFiles are the relative paths every bundle must ship. The manifest
// is synthesized into the project root before selection runs, so by the time
// it is checked here it exists like any other file.
var MandatoryFiles = []string{
	bundle.DescriptorFilename,
	"README.md",
	bundle.ManifestFilename,
}

// MissingFileError is returned when a mandatory file is absent from the
// project root.
type MissingFileError struct {
	Path string
}

// Error implements the error interface for MissingFileError.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("Missing mandatory file: '%s'.", e.Path)
}

// GetPathsToInclude computes the files going into the archive: the mandatory
// files in their declared order, followed by the sorted deduplicated union
// of all prime pattern matches. Every returned path is absolute and lives
// under dirPath.
//
// Mandatory names are literal relative paths; a missing one is fatal. Prime
// patterns are resolved independently against dirPath with globstar
// semantics ('*' stays within one path segment, '**' spans any number of
// them); a pattern matching nothing is an observation, not an error. Each
// pattern and its matches are reported at debug level.
func GetPathsToInclude(logger *log.Logger, dirPath string, mandatory, prime []string) ([]string, error) {
	included := make([]string, 0, len(mandatory))
	seen := make(map[string]struct{})

	for _, name := range mandatory {
		fpath := filepath.Join(dirPath, name)
		if _, err := os.Stat(fpath); err != nil {
			return nil, &MissingFileError{Path: fpath}
		}
		included = append(included, fpath)
		seen[fpath] = struct{}{}
	}

	primeSet := make(map[string]struct{})
	for _, pattern := range prime {
		matches, err := resolvePattern(dirPath, pattern)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Including per prime config '%s': %v.", pattern, matches)
		for _, m := range matches {
			primeSet[m] = struct{}{}
		}
	}

	primePaths := make([]string, 0, len(primeSet))
	for fpath := range primeSet {
		if _, dup := seen[fpath]; dup {
			continue
		}
		primePaths = append(primePaths, fpath)
	}
	sort.Strings(primePaths)

	return append(included, primePaths...), nil
}

// resolvePattern expands one prime pattern against the project root and
// keeps only regular files (symlinks to regular files included). The result
// is sorted so the debug report is stable.
func resolvePattern(dirPath, pattern string) ([]string, error) {
	candidates, err := doublestar.FilepathGlob(filepath.Join(dirPath, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("invalid prime pattern %q: %w", pattern, err)
	}

	matches := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		info, statErr := os.Stat(candidate)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		matches = append(matches, candidate)
	}
	sort.Strings(matches)

	return matches, nil
}
