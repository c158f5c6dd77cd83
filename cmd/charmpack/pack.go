// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"charmpack/internal/charm"
	"charmpack/internal/config"
	"charmpack/pkg/pack"

	"github.com/spf13/cobra"
)

var (
	// packProjectDir is the project root to pack (defaults to the working directory)
	packProjectDir string
	// packRequirement is the requirements file passed to the charm builder
	packRequirement string
	// packEntrypoint is the charm entrypoint passed to the charm builder
	packEntrypoint string
	// packBasesIndices selects which declared bases the charm builder targets
	packBasesIndices []int

	// charmBuilder is the external charm build collaborator. Tests substitute
	// a stub implementation here.
	charmBuilder charm.Builder = charm.NewCommandBuilder()
)

// packCmd builds the project archive
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Build the charm or bundle archive",
	Long: `Build a deployable archive from the project in the indicated directory.

The project kind is read from ` + CmdStyle.Render("charmpack.yaml") + `: a 'bundle' project is
packed directly (its bundle.yaml, README.md, a synthesized manifest.yaml,
and any files selected by the 'prime' patterns), while a 'charm' project is
handed to the charm build toolchain. A project without charmpack.yaml is
packed as a charm.

Examples:
  charmpack pack
  charmpack pack --project-dir ./mybundle
  charmpack pack -r requirements.txt -e src/charm.py`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packProjectDir, "project-dir", "p", "", "project root directory (default is the working directory)")
	packCmd.Flags().StringVarP(&packRequirement, "requirement", "r", "", "requirements file for the charm build (charm only)")
	packCmd.Flags().StringVarP(&packEntrypoint, "entry", "e", "", "charm entrypoint (charm only)")
	packCmd.Flags().IntSliceVar(&packBasesIndices, "bases-index", nil, "index of the bases configuration to build (charm only, repeatable)")
}

// runPack resolves the project kind and dispatches to the bundle packer or
// the external charm builder.
func runPack(cmd *cobra.Command, args []string) error {
	dir := packProjectDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(absDir)
	if err != nil {
		return err
	}

	if cfg.EffectiveType() == config.TypeBundle {
		return runPackBundle(cfg)
	}
	return runPackCharm(cfg)
}

// runPackBundle packs a bundle project. Charm-only options are rejected
// before anything touches the project tree.
func runPackBundle(cfg *config.Config) error {
	if packRequirement != "" {
		return errors.New("The -r/--requirement option is valid only when packing a charm")
	}
	if packEntrypoint != "" {
		return errors.New("The -e/--entry option is valid only when packing a charm")
	}

	svc := pack.NewService(logger)
	_, err := svc.PackBundle(pack.Options{
		DirPath:   cfg.Project.DirPath,
		StartedAt: cfg.Project.StartedAt,
		Prime:     cfg.Prime,
	})
	return err
}

// runPackCharm normalizes the command line into build arguments and hands
// them to the external charm build collaborator.
func runPackCharm(cfg *config.Config) error {
	buildArgs, err := charm.ProcessArgs(charm.BuildArgs{
		FromDir:      cfg.Project.DirPath,
		Requirement:  packRequirement,
		Entrypoint:   packEntrypoint,
		BasesIndices: packBasesIndices,
	})
	if err != nil {
		return err
	}

	if err := charmBuilder.Run(buildArgs); err != nil {
		var exitErr *charm.BuildFailedError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode, Err: err}
		}
		return err
	}
	return nil
}
