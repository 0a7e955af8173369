package cmd

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/statisticsnorway/dapla-republish/pkg/republish"
)

// Flags shared by the trigger subcommands.
var (
	sourceName   string
	folderPrefix string
	dryRun       bool
)

// loadTriggerConfig resolves the configuration for a trigger command and
// applies the effective log level.
func loadTriggerConfig(cmd *cobra.Command) (*Config, error) {
	cfg, err := LoadConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.ProjectID == "" {
		return nil, errors.New("a project ID is required: set --project-id, DAPLA_PROJECT_ID or project_id in the config file")
	}
	// The config file or environment may name a different level than the flag
	// the logger was initialized from.
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	}
	return cfg, nil
}

// clientOptions translates the credentials configuration into client options.
func clientOptions(cfg *Config) []option.ClientOption {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		log.Info().Str("credentials_file", cfg.CredentialsFile).Msg("Using specified credentials file for GCP clients")
	} else {
		log.Debug().Msg("Using Application Default Credentials (ADC) for GCP clients")
	}
	return opts
}

// newTriggerService wires the GCS lister and the chosen batch publisher into
// a republish service. The returned cleanup closes the underlying clients
// and must be called once the trigger has finished.
func newTriggerService(ctx context.Context, cfg *Config) (*republish.Service, func(), error) {
	opts := clientOptions(cfg)

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	cleanup := func() {
		if err := storageClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close GCS client")
		}
	}

	lister, err := republish.NewGCSObjectLister(storageClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var batchPublisher republish.BatchPublisher
	if dryRun {
		batchPublisher, err = republish.NewDryRunPublisher(lister, log.Logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	} else {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create Pub/Sub client for project '%s': %w", cfg.ProjectID, err)
		}
		closeStorage := cleanup
		cleanup = func() {
			if err := pubsubClient.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Pub/Sub client")
			}
			closeStorage()
		}

		batchPublisher, err = republish.NewPublisher(
			lister,
			republish.NewPubSubClientAdapter(pubsubClient),
			republish.PublisherConfig{ResultTimeout: cfg.Publisher.ResultTimeout},
			log.Logger,
		)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	service, err := republish.NewService(batchPublisher, log.Logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}

func addTriggerFlags(cmd *cobra.Command, sourceNameUsage string) {
	cmd.Flags().StringVar(&sourceName, "source-name", "", sourceNameUsage)
	cmd.Flags().StringVar(&folderPrefix, "folder-prefix", "", "Folder prefix of the files to be processed")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would be republished without publishing anything")
	_ = cmd.MarkFlagRequired("source-name")
	_ = cmd.MarkFlagRequired("folder-prefix")
}
