// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc time",
			in:   time.Date(2021, 3, 2, 12, 30, 45, 0, time.UTC),
			want: "2021-03-02T12:30:45.000000Z",
		},
		{
			name: "sub-second precision kept",
			in:   time.Date(2021, 3, 2, 12, 30, 45, 123456000, time.UTC),
			want: "2021-03-02T12:30:45.123456Z",
		},
		{
			name: "non-utc converted",
			in:   time.Date(2021, 3, 2, 12, 30, 45, 0, time.FixedZone("ART", -3*60*60)),
			want: "2021-03-02T15:30:45.000000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateManifest(t *testing.T) {
	dir := t.TempDir()
	startedAt := time.Date(2021, 3, 2, 12, 30, 45, 0, time.UTC)

	manifestPath, err := CreateManifest(dir, startedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, ManifestFilename); manifestPath != want {
		t.Errorf("manifest at %q, want %q", manifestPath, want)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatal(err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest not parsable: %v", err)
	}
	if manifest.StartedAt != "2021-03-02T12:30:45.000000Z" {
		t.Errorf("timestamp %q", manifest.StartedAt)
	}
	if !strings.HasSuffix(manifest.StartedAt, "Z") {
		t.Error("timestamp must carry a literal Z suffix")
	}
}

func TestCreateManifestUnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	if _, err := CreateManifest(dir, time.Now()); err == nil {
		t.Fatal("expected an error")
	}
}
