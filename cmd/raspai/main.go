// Package main provides the raspai CLI for provisioning and deploying the
// voice assistant appliance.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for raspai
func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "raspai",
		Short: "Raspberry Pi Voice Assistant Tool",
		Long: `raspai provisions and deploys the voice assistant appliance.

On the device it installs everything the assistant needs: OS packages,
a Python virtualenv with the payload dependencies, the configuration
file and a systemd service. From a workstation it deploys the assistant
payload to a device over SSH and can trigger the same provisioning
remotely.`,
		Version: version,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		// A local .env is optional. Loading it here lets doctor's live
		// check see GOOGLE_API_KEY without the operator exporting it.
		_ = godotenv.Load()

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level: level,
		})))
	}

	rootCmd.AddCommand(
		newSetupCmd(),
		newDeployCmd(),
		newDoctorCmd(),
		newServiceCmd(),
		newConfigCmd(),
		newFilesCmd(),
		newHistoryCmd(),
		newDocsCmd(),
	)

	return rootCmd
}
