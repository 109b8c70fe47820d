// topoview - Terminal network topology viewer
// Explore a network topology snapshot as an interactive 3D scene.
//
// Controls:
//
//	Mouse drag        - Orbit camera around the topology
//	Right/shift drag  - Pan
//	Scroll            - Zoom in/out
//	Click             - Select node or connection (click empty space to deselect)
//	1/2/3/4           - Top, front, side, isometric view
//	F                 - Fit all nodes in view
//	G                 - Toggle ground grid
//	X/Y/Z             - Toggle axis lines
//	R                 - Reset camera
//	?                 - Toggle HUD overlay
//	Esc               - Quit
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	metricsPath     string
	settingsPath    string
	modelsDir       string
	targetFPS       int
	metricsInterval time.Duration
	logPath         string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "topoview <topology.yaml>",
		Short: "interactive terminal viewer for network topologies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&metricsPath, "metrics", "", "traffic metrics file (yaml)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "visual settings file (yaml)")
	rootCmd.Flags().StringVar(&modelsDir, "models", "models", "directory with glTF device models")
	rootCmd.Flags().IntVar(&targetFPS, "fps", 30, "target frame rate")
	rootCmd.Flags().DurationVar(&metricsInterval, "metrics-interval", 0, "reload the metrics file on this interval (0 disables)")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write logs to this file (default discard)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
