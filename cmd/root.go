package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arctrace",
	Short: "An ambient composition of self-tracing elliptical arcs",
	Long: `arctrace renders a generative visual composition: elliptical arcs that
trace themselves open and closed over time, anchored to small organic
markers, alternating between a scattered field and a single large
centerpiece. Click anywhere to start the drawing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
