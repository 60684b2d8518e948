package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/woozymasta/lintkit/lint"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/mtlximport"
)

var (
	buildName           string
	buildPreset         string
	buildDialect        string
	buildOut            string
	buildFormat         string
	buildNonInteractive bool
	buildToggles        mtlximport.Toggles
)

// buildCmd builds a material network from a texture folder
var buildCmd = &cobra.Command{
	Use:   "build [texture-dir]",
	Short: "Build a MaterialX network from a texture folder",
	Long: `Matches the maps in texture-dir to channels and writes the material network.

Toggles start from the configured preset, then --preset, then explicit flags.
When several maps match a channel you are asked to pick one, unless
--non-interactive is set, in which case the build fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildName, "name", "n", "", "material name (required)")
	buildCmd.Flags().StringVar(&buildPreset, "preset", "", "settings preset JSON")
	buildCmd.Flags().StringVar(&buildDialect, "dialect", "", "node dialect: current, legacy or host version")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output file (default stdout)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "mtlx", "output format: mtlx, yaml, json")
	buildCmd.Flags().BoolVar(&buildNonInteractive, "non-interactive", false, "fail instead of prompting on ambiguous maps")
	addToggleFlags(buildCmd.Flags(), &buildToggles)
}

func runBuild(cmd *cobra.Command, args []string) error {
	toggles, err := resolveToggles(cmd.Flags(), buildPreset, buildToggles)
	if err != nil {
		return err
	}

	dialect := cfg.DialectValue()
	if buildDialect != "" {
		if dialect, err = mtlximport.ParseDialect(buildDialect); err != nil {
			return err
		}
	}

	var chooser mtlximport.Chooser
	if !buildNonInteractive {
		chooser = &mtlximport.PromptChooser{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	}

	im := mtlximport.NewImporter(&mtlximport.ImportOptions{
		Patterns: cfg.PatternTable(),
		Scan:     cfg.ScanOptions(),
		Dialect:  dialect,
		Chooser:  chooser,
		Validate: cfg.ValidateOptions(""),
		Logger:   logger,
	})

	res, err := im.Import(args[0], buildName, toggles)
	if err != nil {
		return err
	}
	diags := mtlximport.Diagnostics(res.Issues)
	printDiagnostics(cmd, diags)
	if err := lint.ErrorFromDiagnostics(diags, lint.SeverityError); err != nil {
		return fmt.Errorf("network %s: %w", res.Network.Name, err)
	}

	if buildOut != "" {
		// Sampler paths resolve against the document directory.
		if err := res.Network.RelocateFiles(filepath.Dir(buildOut)); err != nil {
			return err
		}
	}

	return writeResult(cmd.OutOrStdout(), res)
}

// writeResult renders the result in the selected format to --out or w.
func writeResult(w io.Writer, res *mtlximport.Result) error {
	var (
		data []byte
		err  error
	)
	switch buildFormat {
	case "mtlx":
		data, err = mtlximport.Format(res.Network, nil)
	case "yaml":
		data, err = yaml.Marshal(res)
	case "json":
		data, err = json.MarshalIndent(res, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: unknown format %q", mtlximport.ErrInput, buildFormat)
	}
	if err != nil {
		return err
	}

	if buildOut == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(buildOut, data, 0o644); err != nil {
		return err
	}
	logger.Info("output written", zap.String("path", buildOut), zap.String("format", buildFormat))
	return nil
}

// addToggleFlags registers one flag per feature toggle.
func addToggleFlags(fs *pflag.FlagSet, t *mtlximport.Toggles) {
	fs.BoolVar(&t.ColorVariation, "color-variation", false, "mix per-instance color variation")
	fs.BoolVar(&t.AO, "ao", false, "multiply ambient occlusion into base color")
	fs.BoolVar(&t.Translucency, "translucency", false, "build subsurface translucency")
	fs.BoolVar(&t.Opacity, "opacity", false, "wire opacity map")
	fs.BoolVar(&t.Metalness, "metalness", false, "wire metalness map")
	fs.BoolVar(&t.Displacement, "displacement", false, "build displacement output")
}

// resolveToggles layers config preset, preset file and explicitly set flags.
func resolveToggles(fs *pflag.FlagSet, presetPath string, flags mtlximport.Toggles) (mtlximport.Toggles, error) {
	toggles := mtlximport.DefaultPreset()

	for _, p := range []string{cfg.Preset, presetPath} {
		if p == "" {
			continue
		}
		t, err := mtlximport.LoadPreset(p)
		if err != nil {
			return toggles, err
		}
		toggles = t
		logger.Debug("preset applied", zap.String("path", p))
	}

	override := func(name string, dst *bool, v bool) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	override("color-variation", &toggles.ColorVariation, flags.ColorVariation)
	override("ao", &toggles.AO, flags.AO)
	override("translucency", &toggles.Translucency, flags.Translucency)
	override("opacity", &toggles.Opacity, flags.Opacity)
	override("metalness", &toggles.Metalness, flags.Metalness)
	override("displacement", &toggles.Displacement, flags.Displacement)

	return toggles, nil
}
