package republish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrEmptyBatch is returned when a listing matches no objects. Publishing an
// empty batch almost always means the bucket or prefix is wrong, so it is
// surfaced to the caller before anything reaches the topic.
var ErrEmptyBatch = errors.New("empty batch")

// BatchPublisher notifies a topic about every object under a bucket prefix.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, bucketID, folderPrefix, topicID string) error
}

// DefaultResultTimeout is how long each publish acknowledgement is awaited
// before the message is logged as unconfirmed.
const DefaultResultTimeout = 60 * time.Second

// PublisherConfig holds tuning for the batch publisher.
type PublisherConfig struct {
	// ResultTimeout bounds the wait for the server acknowledgement of each
	// published message. Zero means DefaultResultTimeout.
	ResultTimeout time.Duration
}

// Publisher publishes one storage notification per listed object.
type Publisher struct {
	lister ObjectLister
	bus    PubSubClient
	config PublisherConfig
	logger zerolog.Logger
}

// NewPublisher creates a batch publisher over the given lister and bus.
func NewPublisher(lister ObjectLister, bus PubSubClient, config PublisherConfig, logger zerolog.Logger) (*Publisher, error) {
	if lister == nil {
		return nil, errors.New("object lister cannot be nil")
	}
	if bus == nil {
		return nil, errors.New("pubsub client cannot be nil")
	}
	if config.ResultTimeout <= 0 {
		config.ResultTimeout = DefaultResultTimeout
	}
	return &Publisher{
		lister: lister,
		bus:    bus,
		config: config,
		logger: logger.With().Str("component", "Publisher").Logger(),
	}, nil
}

var _ BatchPublisher = &Publisher{}

// PublishBatch lists every object under folderPrefix in bucketID and
// publishes one notification per object to topicID. It returns ErrEmptyBatch
// before anything is published if the listing comes back empty. Publish
// results are awaited concurrently: a result that fails or does not arrive
// within ResultTimeout is logged with the object name and does not fail the
// batch. The call returns once every result has settled.
func (p *Publisher) PublishBatch(ctx context.Context, bucketID, folderPrefix, topicID string) error {
	logger := p.logger.With().
		Str("run_id", uuid.New().String()).
		Str("bucket_id", bucketID).
		Str("folder_prefix", folderPrefix).
		Str("topic_id", topicID).
		Logger()

	objects, err := p.lister.ListObjects(ctx, bucketID, folderPrefix)
	if err != nil {
		return fmt.Errorf("failed to list batch: %w", err)
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: there are no files in %s with the given %s", ErrEmptyBatch, bucketID, folderPrefix)
	}

	// Encode everything up front so an encoding failure aborts the batch
	// before the first message is handed to the client.
	payloads := make([][]byte, len(objects))
	for i, obj := range objects {
		data, err := NewObjectNotification(bucketID, obj.Name).Encode()
		if err != nil {
			return fmt.Errorf("failed to encode notification for %s: %w", obj.Name, err)
		}
		payloads[i] = data
	}

	topic := p.bus.Topic(topicID)
	defer topic.Stop()

	var wg sync.WaitGroup
	var unconfirmed atomic.Int64

	for i, obj := range objects {
		result := topic.Publish(ctx, payloads[i], PublishAttributes(bucketID, obj.Name))

		wg.Add(1)
		go func(objectID string, result PubSubResult) {
			defer wg.Done()
			// Await against a fresh context: cancelling the batch context
			// must not abandon messages already handed to the client.
			waitCtx, cancel := context.WithTimeout(context.Background(), p.config.ResultTimeout)
			defer cancel()

			if _, err := result.Get(waitCtx); err != nil {
				unconfirmed.Add(1)
				if errors.Is(err, context.DeadlineExceeded) {
					logger.Warn().Str("object_id", objectID).Msg("Publishing message timed out")
				} else {
					logger.Warn().Err(err).Str("object_id", objectID).Msg("Publishing message failed")
				}
			}
		}(obj.Name, result)
	}

	wg.Wait()

	logger.Info().
		Int("message_count", len(objects)).
		Int64("unconfirmed", unconfirmed.Load()).
		Str("topic", topic.String()).
		Msg("Messages published")
	return nil
}
