package republish

import (
	"context"

	"cloud.google.com/go/pubsub"
)

// --- Pub/Sub Client Abstraction Interfaces ---

// PubSubResult is the pending server acknowledgement for one published
// message. Get blocks until the server responds or the context is done.
type PubSubResult interface {
	Get(ctx context.Context) (string, error)
}

// PubSubTopic publishes messages to a single topic. String returns the fully
// qualified topic path. Stop flushes queued messages and releases the
// topic's publishing goroutines.
type PubSubTopic interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) PubSubResult
	String() string
	Stop()
}

// PubSubClient hands out topic publishers.
type PubSubClient interface {
	Topic(topicID string) PubSubTopic
}

// --- Adapters for the Google Cloud Pub/Sub client ---

type pubsubClientAdapter struct{ client *pubsub.Client }

// NewPubSubClientAdapter wraps a real Pub/Sub client in the PubSubClient
// interface so publishing can be faked in tests.
func NewPubSubClientAdapter(client *pubsub.Client) PubSubClient {
	return &pubsubClientAdapter{client: client}
}

func (a *pubsubClientAdapter) Topic(topicID string) PubSubTopic {
	return &pubsubTopicAdapter{topic: a.client.Topic(topicID)}
}

type pubsubTopicAdapter struct{ topic *pubsub.Topic }

func (a *pubsubTopicAdapter) Publish(ctx context.Context, data []byte, attributes map[string]string) PubSubResult {
	return a.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attributes})
}

func (a *pubsubTopicAdapter) String() string { return a.topic.String() }

func (a *pubsubTopicAdapter) Stop() { a.topic.Stop() }

var _ PubSubClient = &pubsubClientAdapter{}
var _ PubSubTopic = &pubsubTopicAdapter{}
var _ PubSubResult = &pubsub.PublishResult{}
