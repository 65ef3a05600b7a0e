// stairwalk - a humanoid walking down a spiral staircase.
//
// Controls:
//
//	E/D         - Tilt camera down/up
//	S/F         - Pan camera left/right
//	Keypad +/-  - Zoom in/out
//	V           - Start the walk
//	F2          - Open another model
//	H/L/T       - Cycle actor height, ambient light, animation speed
//	F4          - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stairwalk/internal/app"
	"stairwalk/internal/asset"
	"stairwalk/internal/config"
)

var (
	configPath string
	modelPath  string
	watch      bool
	format     string
)

func main() {
	cmd := &cobra.Command{
		Use:   "stairwalk",
		Short: "Animate a model walking down a spiral staircase",
		Long: `stairwalk - a humanoid walking down a spiral staircase.

Controls:
  E/D         - Tilt camera down/up
  S/F         - Pan camera left/right
  Keypad +/-  - Zoom in/out
  V           - Start the walk
  F2          - Open another model
  H/L/T       - Cycle actor height, ambient light, animation speed
  F4          - Quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return app.RunDesktop(cfg)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML, or TOML by extension)")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Model file (OBJ)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload parameters when the config file changes")

	infoCmd := &cobra.Command{
		Use:   "info <model.obj>",
		Short: "Display model information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			return runInfo(cmd.Context(), args[0])
		},
	}
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), format)
		},
	}
	configCmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or toml")
	cmd.AddCommand(infoCmd, configCmd)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("stairwalk", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies flag overrides and installs the
// logger at the configured level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelPath
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = watch
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

func runInfo(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := asset.LoadModel(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	return asset.WriteInfo(os.Stdout, m)
}
