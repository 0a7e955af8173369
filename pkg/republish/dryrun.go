package republish

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// DryRunPublisher implements BatchPublisher without touching the message
// bus: it lists the batch and logs what would have been published. The
// empty-batch check still applies, so a dry run catches a bad bucket or
// prefix the same way a real run would.
type DryRunPublisher struct {
	lister ObjectLister
	logger zerolog.Logger
}

// NewDryRunPublisher creates a publisher that only reports.
func NewDryRunPublisher(lister ObjectLister, logger zerolog.Logger) (*DryRunPublisher, error) {
	if lister == nil {
		return nil, errors.New("object lister cannot be nil")
	}
	return &DryRunPublisher{
		lister: lister,
		logger: logger.With().Str("component", "DryRunPublisher").Logger(),
	}, nil
}

var _ BatchPublisher = &DryRunPublisher{}

// PublishBatch lists the objects under the prefix and logs each notification
// that a real run would publish.
func (p *DryRunPublisher) PublishBatch(ctx context.Context, bucketID, folderPrefix, topicID string) error {
	objects, err := p.lister.ListObjects(ctx, bucketID, folderPrefix)
	if err != nil {
		return fmt.Errorf("failed to list batch: %w", err)
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: there are no files in %s with the given %s", ErrEmptyBatch, bucketID, folderPrefix)
	}

	for _, obj := range objects {
		p.logger.Info().
			Str("bucket_id", bucketID).
			Str("object_id", obj.Name).
			Str("topic_id", topicID).
			Msg("Would publish notification")
	}
	p.logger.Info().
		Int("message_count", len(objects)).
		Str("topic_id", topicID).
		Msg("Dry run complete, nothing was published")
	return nil
}
