// SPDX-License-Identifier: MPL-2.0

// Package config loads the charmpack project configuration.
//
// The project file is charmpack.yaml at the project root. It is optional:
// a project without one is packed as a charm. Only the packing core reads
// the resulting Config, and only ever as an immutable snapshot.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"charmpack/internal/issue"

	"github.com/spf13/viper"
)

// ProjectFileName is the name of the project configuration file.
const ProjectFileName = "charmpack.yaml"

// fileConfig mirrors the charmpack.yaml keys consumed by the packer.
type fileConfig struct {
	Type  string   `mapstructure:"type"`
	Prime []string `mapstructure:"prime"`
}

// Load reads charmpack.yaml from dirPath and returns the project configuration.
// A missing project file is not an error: the returned Config has an unset
// type and ConfigProvided=false. The build start time is captured here so the
// manifest reflects when the whole operation began.
func Load(dirPath string) (*Config, error) {
	cfg := &Config{
		Project: Project{
			DirPath:   dirPath,
			StartedAt: time.Now().UTC(),
		},
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dirPath, ProjectFileName))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, issue.WrapWithResource(err, "load project file", filepath.Join(dirPath, ProjectFileName),
			"Check the YAML syntax of charmpack.yaml")
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, issue.WrapWithResource(err, "parse project file", filepath.Join(dirPath, ProjectFileName),
			"'type' must be a string and 'prime' a list of patterns")
	}

	cfg.Type = ProjectType(fc.Type)
	if !cfg.Type.valid() {
		return nil, &InvalidProjectTypeError{Value: cfg.Type}
	}
	cfg.Prime = fc.Prime
	cfg.Project.ConfigProvided = true

	return cfg, nil
}
