// SPDX-License-Identifier: MPL-2.0

// Package bundle handles the bundle descriptor and the synthesized build
// manifest.
//
// A bundle project carries a bundle.yaml descriptor at its root; the packer
// only consults its 'name' field, which names the output archive. The
// wording of the descriptor errors is part of the tool's compatibility
// contract, so it lives here next to the code that raises it.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DescriptorFilename is the fixed name of the bundle descriptor.
const DescriptorFilename = "bundle.yaml"

// Descriptor is the parsed bundle.yaml. Only the name is consulted; the
// rest of the document travels into the archive untouched as file bytes.
type Descriptor struct {
	// Name is the bundle name; the archive is written as <Name>.zip.
	Name string

	// Path is the absolute path of the descriptor file.
	Path string
}

// DescriptorError is returned when bundle.yaml is absent or not parsable
// as a YAML mapping.
type DescriptorError struct {
	Path string
}

// Error implements the error interface for DescriptorError.
func (e *DescriptorError) Error() string {
	return fmt.Sprintf("Missing or invalid main bundle file: '%s'.", e.Path)
}

// MissingNameError is returned when bundle.yaml parses but has no 'name'.
type MissingNameError struct {
	Path string
}

// Error implements the error interface for MissingNameError.
func (e *MissingNameError) Error() string {
	return fmt.Sprintf("Invalid bundle config; missing a 'name' field indicating the bundle's name in file '%s'.", e.Path)
}

// LoadDescriptor reads and parses bundle.yaml from the project root.
// A missing or unparsable file and a parsed-but-nameless one are distinct
// fatal conditions with their own user-facing messages.
func LoadDescriptor(dirPath string) (*Descriptor, error) {
	descPath := filepath.Join(dirPath, DescriptorFilename)

	data, err := os.ReadFile(descPath)
	if err != nil {
		return nil, &DescriptorError{Path: descPath}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, &DescriptorError{Path: descPath}
	}

	name, _ := doc["name"].(string)
	if name == "" {
		return nil, &MissingNameError{Path: descPath}
	}

	return &Descriptor{Name: name, Path: descPath}, nil
}
