package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/feyli/arctrace/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the current settings",
	Run:   showSettings,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset settings to their defaults",
	Run:   resetSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(resetCmd)
	log.SetFlags(0)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// settingsCmd.PersistentFlags().String("foo", "", "A help for foo")
}

func showSettings(cmd *cobra.Command, args []string) {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode settings:", err)
	}
	fmt.Println(string(data))
}

func resetSettings(cmd *cobra.Command, args []string) {
	if err := config.SaveSettings(config.DefaultSettings()); err != nil {
		log.Fatal("Failed to save settings:", err)
	}

	path, _ := config.GetSettingsPath()
	fmt.Println("Settings reset:", path)
}
