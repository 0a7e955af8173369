package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// cfgFile points at an optional YAML configuration file.
	// Persistent flag, available to all subcommands.
	cfgFile string

	// projectID is the team's standard GCP project, the single input every
	// resource name is derived from.
	projectID string

	// logLevel controls the verbosity of the CLI's logging.
	logLevel string

	// credentialsFile optionally selects a service account key file;
	// Application Default Credentials are used when unset.
	credentialsFile string

	// resultTimeout bounds the wait for each publish acknowledgement.
	resultTimeout time.Duration
)

// rootCmd is the entry point for the republishctl CLI.
var rootCmd = &cobra.Command{
	Use:   "republishctl",
	Short: "Republish landed data files to Dapla processing services.",
	Long: `republishctl notifies a Dapla processing service (Kildomaten or Delomaten)
that files in a team bucket are ready for processing.

It lists every object under a folder prefix in the team's data bucket and
publishes one storage notification per object to the service's update topic,
exactly as if the files had just landed. Bucket and topic names are derived
from the team's GCP project ID.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup global logger based on the --log-level flag.
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			log.Warn().Str("provided_level", logLevel).Msg("Invalid log level provided. Defaulting to 'info'.")
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		} else {
			zerolog.SetGlobalLevel(level)
		}
		return nil
	},
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to an optional YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&projectID, "project-id", "p", "", "GCP project ID of the team's standard project (e.g. dapla-kildomaten-p-zz)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the logging level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "Path to a service account key file (optional, uses ADC if not set)")
	rootCmd.PersistentFlags().DurationVar(&resultTimeout, "result-timeout", 0, "How long to wait for each publish acknowledgement (default 60s)")
}
