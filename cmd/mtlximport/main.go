package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/woozymasta/lintkit/lint"
	"go.uber.org/zap"

	"github.com/woozymasta/mtlximport"
	"github.com/woozymasta/mtlximport/internal/config"
	"github.com/woozymasta/mtlximport/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mtlximport",
	Short: "Build MaterialX standard surface networks from texture folders",
	Long: `mtlximport matches texture maps in a folder to material channels by filename
and assembles a MaterialX standard surface network from them.

Example:
  mtlximport build ./textures/wood --name wood --ao --displacement -o wood.mtlx`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "mtlximport.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(buildCmd, classifyCmd, validateCmd, presetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps error kinds to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, mtlximport.ErrInput):
		return 2
	case errors.Is(err, mtlximport.ErrAmbiguousSelection):
		return 3
	case errors.Is(err, mtlximport.ErrPresetFormat):
		return 4
	case errors.As(err, new(*lint.DiagnosticsError)):
		return 5
	default:
		return 1
	}
}

// printDiagnostics writes diagnostics one per line.
func printDiagnostics(cmd *cobra.Command, diags []lint.Diagnostic) {
	for _, d := range diags {
		if d.Path != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s) [%s]\n", d.Severity, d.Message, d.Path, d.RuleID)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s [%s]\n", d.Severity, d.Message, d.RuleID)
	}
}
