package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KiranEiden/amrplot/internal/config"
	"github.com/KiranEiden/amrplot/internal/shell"
)

var (
	configFile  string
	historyFile string
	plotWidth   int
	plotHeight  int
	theme       string
	viewer      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "amrplot",
		Short: "interactive slice plots of AMR simulation output",
		Args:  cobra.NoArgs,
		RunE:  runShell,
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&historyFile, "history", "", "command history file")
	rootCmd.Flags().IntVar(&plotWidth, "plot-width", config.DefaultPlotWidth, "plot raster width in cells")
	rootCmd.Flags().IntVar(&plotHeight, "plot-height", config.DefaultPlotHeight, "plot raster height in cells")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme (viridis, inferno, gray)")
	rootCmd.Flags().BoolVar(&viewer, "viewer", false, "open plots in a fullscreen viewer")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config only when explicitly set.
	if cmd.Flags().Changed("history") {
		cfg.HistoryFile = historyFile
	}
	if cmd.Flags().Changed("plot-width") {
		cfg.PlotWidth = plotWidth
	}
	if cmd.Flags().Changed("plot-height") {
		cfg.PlotHeight = plotHeight
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	if cmd.Flags().Changed("viewer") {
		cfg.Viewer = viewer
	}

	return shell.New(cfg).Run()
}
