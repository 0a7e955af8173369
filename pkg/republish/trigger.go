package republish

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/statisticsnorway/dapla-republish/pkg/naming"
)

// Service exposes the two republish operations: nudging a Kildomaten source
// processor or a Delomaten shared data processor with every file under a
// folder prefix, as if the files had just landed in the bucket.
type Service struct {
	publisher BatchPublisher
	logger    zerolog.Logger
}

// NewService wires a batch publisher into the trigger operations.
func NewService(publisher BatchPublisher, logger zerolog.Logger) (*Service, error) {
	if publisher == nil {
		return nil, errors.New("batch publisher cannot be nil")
	}
	return &Service{
		publisher: publisher,
		logger:    logger.With().Str("component", "Service").Logger(),
	}, nil
}

// TriggerSourceDataProcessing notifies the Kildomaten source processor for
// sourceName about every file under folderPrefix in the team's source data
// bucket. The bucket and topic names are derived from projectID; kuben
// selects between the Kuben and legacy bucket conventions.
func (s *Service) TriggerSourceDataProcessing(ctx context.Context, projectID, sourceName, folderPrefix string, kuben bool) error {
	projectName, err := naming.ExtractProjectName(projectID)
	if err != nil {
		return err
	}

	var bucketID string
	if kuben {
		env, err := naming.ExtractEnvironment(projectID)
		if err != nil {
			return err
		}
		bucketID = naming.SourceDataBucketID(projectName, env, true)
	} else {
		bucketID = naming.SourceDataBucketID(projectName, "", false)
	}

	topicID := naming.SourceUpdateTopicID(sourceName)

	s.logger.Info().
		Str("project_id", projectID).
		Str("bucket_id", bucketID).
		Str("folder_prefix", folderPrefix).
		Str("topic_id", topicID).
		Msg("Triggering source data processing")

	return s.publisher.PublishBatch(ctx, bucketID, folderPrefix, topicID)
}

// TriggerSharedDataProcessing notifies the Delomaten processor for
// sourceName about every file under folderPrefix in the team's shared data
// bucket. Shared data only exists on Kuben, so the environment marker is
// always required.
func (s *Service) TriggerSharedDataProcessing(ctx context.Context, projectID, sourceName, folderPrefix string) error {
	projectName, err := naming.ExtractProjectName(projectID)
	if err != nil {
		return err
	}
	env, err := naming.ExtractEnvironment(projectID)
	if err != nil {
		return err
	}

	bucketID := naming.SharedDataBucketID(projectName, env)
	topicID := naming.SharedUpdateTopicID(sourceName)

	s.logger.Info().
		Str("project_id", projectID).
		Str("bucket_id", bucketID).
		Str("folder_prefix", folderPrefix).
		Str("topic_id", topicID).
		Msg("Triggering shared data processing")

	return s.publisher.PublishBatch(ctx, bucketID, folderPrefix, topicID)
}
