package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var kuben bool

// sourceCmd triggers a Kildomaten source data processor.
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Trigger source data processing for files under a folder prefix",
	Long: `The source command republishes every file under a folder prefix in the
team's source data ("kilde") bucket to the update topic of a Kildomaten
source processor.

The bucket name is derived from the project ID. Kuben teams get the
environment-suffixed bucket (ssb-<team>-data-kilde-<env>); legacy teams
should pass --kuben=false to target the unsuffixed bucket.`,
	Example: `  republishctl source -p dapla-kildomaten-p-zz --source-name kilde1 --folder-prefix inndata/2025
  republishctl source -p prod-demo-fake-D869 --source-name kilde1 --folder-prefix inndata/ --kuben=false
  republishctl source -p dapla-kildomaten-t-zz --source-name kilde_1 --folder-prefix inndata/ --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadTriggerConfig(cmd)
		if err != nil {
			return err
		}
		log.Info().
			Str("project_id", cfg.ProjectID).
			Str("source_name", sourceName).
			Str("folder_prefix", folderPrefix).
			Bool("kuben", kuben).
			Bool("dry_run", dryRun).
			Msg("Starting 'source' command")

		ctx := context.Background()
		service, cleanup, err := newTriggerService(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return service.TriggerSourceDataProcessing(ctx, cfg.ProjectID, sourceName, folderPrefix, kuben)
	},
}

func init() {
	rootCmd.AddCommand(sourceCmd)
	addTriggerFlags(sourceCmd, "Name of the Kildomaten source that should process the files")
	sourceCmd.Flags().BoolVar(&kuben, "kuben", true, "Whether the team is on Kuben (pass --kuben=false for legacy teams)")
}
