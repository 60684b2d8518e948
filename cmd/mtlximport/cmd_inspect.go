package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/woozymasta/lintkit/lint"
	"go.uber.org/zap"

	"github.com/woozymasta/mtlximport"
)

var (
	classifyAll    bool
	validateFailOn string
)

// classifyCmd shows which maps match each channel
var classifyCmd = &cobra.Command{
	Use:   "classify [texture-dir]",
	Short: "Show texture candidates per channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

// validateCmd checks a written MaterialX document
var validateCmd = &cobra.Command{
	Use:   "validate [file.mtlx]",
	Short: "Validate a MaterialX document written by build",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyAll, "all", false, "list every candidate instead of only unambiguous matches")
	validateCmd.Flags().StringVar(&validateFailOn, "fail-on", string(lint.SeverityError), "lowest severity that fails: error, warning, info, notice")
}

func runClassify(cmd *cobra.Command, args []string) error {
	files, err := mtlximport.ListImageFiles(args[0], cfg.ScanOptions())
	if err != nil {
		return err
	}
	logger.Debug("texture files listed", zap.String("dir", args[0]), zap.Int("count", len(files)))

	c := mtlximport.NewClassifier(cfg.PatternTable(), nil)
	out := cmd.OutOrStdout()
	for _, ch := range mtlximport.Channels {
		candidates := c.Classify(files, ch)
		switch {
		case len(candidates) == 0:
			fmt.Fprintf(out, "%-14s -\n", ch)
		case len(candidates) == 1 || !classifyAll:
			p, err := c.Resolve(candidates, ch)
			if err != nil {
				fmt.Fprintf(out, "%-14s ambiguous (%d maps)\n", ch, len(candidates))
				continue
			}
			fmt.Fprintf(out, "%-14s %s\n", ch, filepath.Base(p))
		default:
			for _, p := range candidates {
				fmt.Fprintf(out, "%-14s %s\n", ch, filepath.Base(p))
			}
		}
	}

	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	net, err := mtlximport.DecodeFile(args[0])
	if err != nil {
		return err
	}

	diags, err := mtlximport.RunLint(cmd.Context(), net, cfg.ValidateOptions(filepath.Dir(args[0])))
	if err != nil {
		return err
	}
	printDiagnostics(cmd, diags)
	logger.Info("document validated", zap.String("network", net.Name), zap.Int("nodes", net.Len()), zap.Int("diagnostics", len(diags)))

	if err := lint.ErrorFromDiagnostics(diags, lint.Severity(validateFailOn)); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return nil
}
