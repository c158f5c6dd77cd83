// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
)

// BuildZip writes a zip archive at zipPath containing the given files, each
// stored under its path relative to baseDir with forward slashes. Input
// order is preserved; ordering is the caller's responsibility. Every path
// must live under baseDir.
//
// Symlinks are dereferenced: the entry keeps the link's own relative name
// but carries the target's bytes, wherever the target points. An existing
// archive at zipPath is overwritten, and on failure the partial archive is
// removed rather than left in place.
func BuildZip(zipPath, baseDir string, paths []string) (err error) {
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}

	// Registered first so it runs after the closes below: a failed build
	// must not leave a truncated archive behind.
	defer func() {
		if err != nil {
			_ = os.Remove(zipPath)
		}
	}()
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, fpath := range paths {
		relPath, relErr := filepath.Rel(baseDir, fpath)
		if relErr != nil {
			err = fmt.Errorf("failed to relativize %s: %w", fpath, relErr)
			return err
		}

		// os.ReadFile follows symlinks, which is exactly the dereference
		// behavior the archive needs.
		data, readErr := os.ReadFile(fpath)
		if readErr != nil {
			err = fmt.Errorf("failed to read file %s: %w", fpath, readErr)
			return err
		}

		header := &zip.FileHeader{
			Name:   filepath.ToSlash(relPath),
			Method: zip.Deflate,
		}
		writer, createErr := zipWriter.CreateHeader(header)
		if createErr != nil {
			err = fmt.Errorf("failed to create archive entry: %w", createErr)
			return err
		}

		if _, writeErr := writer.Write(data); writeErr != nil {
			err = fmt.Errorf("failed to write archive entry: %w", writeErr)
			return err
		}
	}

	return nil
}
