// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		content  string // descriptor content; special value "-" means no file
		wantName string
		wantErr  string // format string receiving the descriptor path
	}{
		{
			name:     "valid descriptor",
			content:  "name: testbundle\n",
			wantName: "testbundle",
		},
		{
			name:     "extra fields are ignored",
			content:  "name: testbundle\nseries: jammy\napplications: {}\n",
			wantName: "testbundle",
		},
		{
			name:    "missing file",
			content: "-",
			wantErr: "Missing or invalid main bundle file: '%s'.",
		},
		{
			name:    "empty document",
			content: "",
			wantErr: "Missing or invalid main bundle file: '%s'.",
		},
		{
			name:    "not valid yaml",
			content: "name: [unclosed\n",
			wantErr: "Missing or invalid main bundle file: '%s'.",
		},
		{
			name:    "not a mapping",
			content: "- just\n- a\n- list\n",
			wantErr: "Missing or invalid main bundle file: '%s'.",
		},
		{
			name:    "empty mapping has no name",
			content: "{}",
			wantErr: "Invalid bundle config; missing a 'name' field indicating the bundle's name in file '%s'.",
		},
		{
			name:    "name is not a string",
			content: "name: [1, 2]\n",
			wantErr: "Invalid bundle config; missing a 'name' field indicating the bundle's name in file '%s'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			descPath := filepath.Join(dir, DescriptorFilename)
			if tt.content != "-" {
				if err := os.WriteFile(descPath, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			desc, err := LoadDescriptor(dir)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected an error")
				}
				if want := fmt.Sprintf(tt.wantErr, descPath); err.Error() != want {
					t.Errorf("got %q, want %q", err.Error(), want)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.Name != tt.wantName {
				t.Errorf("name %q, want %q", desc.Name, tt.wantName)
			}
			if desc.Path != descPath {
				t.Errorf("path %q, want %q", desc.Path, descPath)
			}
		})
	}
}

func TestLoadDescriptorErrorTypes(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDescriptor(dir)
	var descErr *DescriptorError
	if !errors.As(err, &descErr) {
		t.Fatalf("expected DescriptorError, got %T", err)
	}

	if err := os.WriteFile(filepath.Join(dir, DescriptorFilename), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadDescriptor(dir)
	var nameErr *MissingNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected MissingNameError, got %T", err)
	}
}
