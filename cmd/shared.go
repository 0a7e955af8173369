package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// sharedCmd triggers a Delomaten shared data processor.
var sharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "Trigger shared data processing for files under a folder prefix",
	Long: `The shared command republishes every file under a folder prefix in the
team's shared data ("produkt") bucket to the update topic of a Delomaten
processor.

The source name corresponds to the folder your Delomaten configuration file
is placed under: if the path to the config.yaml is
automation/shared-data/mitt-team-prod/beftett/config.yaml, the source name
is 'beftett'. Shared data buckets only exist on Kuben, so the project ID
must carry an environment marker.`,
	Example: `  republishctl shared -p dapla-delomaten-p-zz --source-name beftett --folder-prefix utdata/2025
  republishctl shared -p dapla-delomaten-t-zz --source-name beftett --folder-prefix utdata/ --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadTriggerConfig(cmd)
		if err != nil {
			return err
		}
		log.Info().
			Str("project_id", cfg.ProjectID).
			Str("source_name", sourceName).
			Str("folder_prefix", folderPrefix).
			Bool("dry_run", dryRun).
			Msg("Starting 'shared' command")

		ctx := context.Background()
		service, cleanup, err := newTriggerService(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return service.TriggerSharedDataProcessing(ctx, cfg.ProjectID, sourceName, folderPrefix)
	},
}

func init() {
	rootCmd.AddCommand(sharedCmd)
	addTriggerFlags(sharedCmd, "Name of the Delomaten processor that should process the files")
}
