package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screenlab/screener-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener-api",
	Short: "Screener API server",
	Long: `Screener API - A video tagging and timeline annotation API

This API manages a video library with timestamped tags, keeps a media
player and its waveform view in sync over WebSocket, and can run an
external analyzer to generate tags for a video automatically.

Features:
  • Video library with file upload and external URL sources
  • Timestamped tags over HH:MM:SS,mmm timeline intervals
  • Live player/waveform synchronization via WebSocket
  • Automatic tag generation through an external analyzer
  • Waveform extraction via ffmpeg`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("pretty-logs", false, "enable human readable console logs")

	// Flags set on the command line beat settings.yaml and SCREENER_* vars.
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.pretty", rootCmd.PersistentFlags().Lookup("pretty-logs"))
}

// loadConfig loads the configuration when a command needs it.
// Version and help never touch config, so a broken config file
// does not lock those commands out.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
