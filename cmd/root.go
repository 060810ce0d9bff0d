package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/greboid/termplan/internal/config"
	"github.com/spf13/cobra"
)

var (
	debugMode    bool
	settingsPath string
	settings     = config.Default()
)

// errInfeasible signals a plan that could not be built within the
// constraints. It maps to exit status 2.
var errInfeasible = errors.New("plan is infeasible")

var rootCmd = &cobra.Command{
	Use:           "termplan",
	Short:         "Plan courses into terms from a YAML or HCL catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debugMode {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		loaded, err := config.Load(settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", config.DefaultPath, "Path to the settings file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errInfeasible) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
