package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/woozymasta/mtlximport"
)

var presetToggles mtlximport.Toggles

// presetCmd groups settings preset commands
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Load, save and reset settings presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Save toggles as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return savePreset(cmd, args[0], presetToggles)
	},
}

var presetResetCmd = &cobra.Command{
	Use:   "reset [path]",
	Short: "Write a preset with every toggle off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return savePreset(cmd, args[0], mtlximport.DefaultPreset())
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Validate and print a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := mtlximport.LoadPreset(args[0])
		if err != nil {
			return err
		}
		b, err := mtlximport.MarshalPreset(t)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	addToggleFlags(presetSaveCmd.Flags(), &presetToggles)
	presetCmd.AddCommand(presetSaveCmd, presetResetCmd, presetShowCmd)
}

// savePreset writes t and reports the final path.
func savePreset(cmd *cobra.Command, path string, t mtlximport.Toggles) error {
	written, err := mtlximport.SavePreset(path, t)
	if err != nil {
		return err
	}
	logger.Info("preset saved", zap.String("path", written))
	fmt.Fprintln(cmd.OutOrStdout(), written)

	return nil
}
