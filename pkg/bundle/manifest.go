// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFilename is the fixed name of the synthesized manifest, both on
// disk while packing and as the archive entry.
const ManifestFilename = "manifest.yaml"

// Manifest is the build metadata injected into every bundle archive.
type Manifest struct {
	// StartedAt is the build start time, ISO-8601 with a literal 'Z'.
	StartedAt string `yaml:"charmpack-started-at"`
}

// FormatTimestamp renders t the way the manifest stores it: ISO-8601 at
// microsecond precision in UTC, with a literal 'Z' suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}

// CreateManifest writes manifest.yaml into dirPath and returns its path.
// The file is ephemeral: the caller must remove it once the archive is
// written, on success and failure alike.
func CreateManifest(dirPath string, startedAt time.Time) (string, error) {
	manifest := Manifest{StartedAt: FormatTimestamp(startedAt)}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to serialize manifest: %w", err)
	}

	manifestPath := filepath.Join(dirPath, ManifestFilename)
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifestPath, nil
}
