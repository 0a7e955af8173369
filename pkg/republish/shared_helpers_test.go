package republish_test

import (
	"context"
	"strings"
	"sync"

	"github.com/statisticsnorway/dapla-republish/pkg/republish"
)

// --- Mock Implementations ---
// Shared fakes for the republish package tests. Behavior is injected through
// the *Fn fields; calls are recorded for verification.

// MockObjectLister is a mock implementation of the ObjectLister interface.
type MockObjectLister struct {
	mu            sync.Mutex
	ListObjectsFn func(ctx context.Context, bucketID, prefix string) ([]republish.StorageObject, error)
	calls         []ListCall
}

// ListCall records the arguments of one ListObjects invocation.
type ListCall struct {
	BucketID string
	Prefix   string
}

func (m *MockObjectLister) ListObjects(ctx context.Context, bucketID, prefix string) ([]republish.StorageObject, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ListCall{BucketID: bucketID, Prefix: prefix})
	m.mu.Unlock()

	if m.ListObjectsFn != nil {
		return m.ListObjectsFn(ctx, bucketID, prefix)
	}
	return nil, nil
}

func (m *MockObjectLister) GetCalls() []ListCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]ListCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// listerWithObjects returns a lister that yields the given object names for
// any bucket and prefix.
func listerWithObjects(bucketID string, names ...string) *MockObjectLister {
	return &MockObjectLister{
		ListObjectsFn: func(ctx context.Context, b, prefix string) ([]republish.StorageObject, error) {
			var objects []republish.StorageObject
			for _, name := range names {
				if strings.HasPrefix(name, prefix) {
					objects = append(objects, republish.StorageObject{Bucket: bucketID, Name: name})
				}
			}
			return objects, nil
		},
	}
}

// MockPubSubResult is a mock implementation of the PubSubResult interface.
type MockPubSubResult struct {
	GetFn func(ctx context.Context) (string, error)
}

func (m *MockPubSubResult) Get(ctx context.Context) (string, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return "server-msg-id", nil
}

// blockingResult is a result whose acknowledgement never arrives; Get only
// returns once the wait context expires.
func blockingResult() *MockPubSubResult {
	return &MockPubSubResult{
		GetFn: func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}

// PublishedMessage records the payload and attributes of one publish call.
type PublishedMessage struct {
	Data       []byte
	Attributes map[string]string
}

// MockPubSubTopic is a mock implementation of the PubSubTopic interface.
type MockPubSubTopic struct {
	mu        sync.Mutex
	PublishFn func(ctx context.Context, data []byte, attributes map[string]string) republish.PubSubResult
	name      string
	published []PublishedMessage
	stopped   bool
}

func NewMockPubSubTopic(name string) *MockPubSubTopic {
	return &MockPubSubTopic{name: name}
}

func (m *MockPubSubTopic) Publish(ctx context.Context, data []byte, attributes map[string]string) republish.PubSubResult {
	m.mu.Lock()
	m.published = append(m.published, PublishedMessage{Data: data, Attributes: attributes})
	m.mu.Unlock()

	if m.PublishFn != nil {
		return m.PublishFn(ctx, data, attributes)
	}
	return &MockPubSubResult{}
}

func (m *MockPubSubTopic) String() string { return m.name }

func (m *MockPubSubTopic) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockPubSubTopic) GetPublished() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	published := make([]PublishedMessage, len(m.published))
	copy(published, m.published)
	return published
}

func (m *MockPubSubTopic) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// MockPubSubClient is a mock implementation of the PubSubClient interface.
// Topics are created on demand and retained for inspection.
type MockPubSubClient struct {
	mu     sync.Mutex
	topics map[string]*MockPubSubTopic
}

func NewMockPubSubClient() *MockPubSubClient {
	return &MockPubSubClient{topics: make(map[string]*MockPubSubTopic)}
}

func (m *MockPubSubClient) Topic(topicID string) republish.PubSubTopic {
	m.mu.Lock()
	defer m.mu.Unlock()
	if topic, ok := m.topics[topicID]; ok {
		return topic
	}
	topic := NewMockPubSubTopic("projects/test-project/topics/" + topicID)
	m.topics[topicID] = topic
	return topic
}

// GetTopic returns the recorded topic, or nil if it was never requested.
func (m *MockPubSubClient) GetTopic(topicID string) *MockPubSubTopic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topics[topicID]
}

// MockBatchPublisher is a mock implementation of the BatchPublisher
// interface, used to verify the names the trigger operations derive.
type MockBatchPublisher struct {
	mu             sync.Mutex
	PublishBatchFn func(ctx context.Context, bucketID, folderPrefix, topicID string) error
	calls          []PublishBatchCall
}

// PublishBatchCall records the arguments of one PublishBatch invocation.
type PublishBatchCall struct {
	BucketID     string
	FolderPrefix string
	TopicID      string
}

func (m *MockBatchPublisher) PublishBatch(ctx context.Context, bucketID, folderPrefix, topicID string) error {
	m.mu.Lock()
	m.calls = append(m.calls, PublishBatchCall{BucketID: bucketID, FolderPrefix: folderPrefix, TopicID: topicID})
	m.mu.Unlock()

	if m.PublishBatchFn != nil {
		return m.PublishBatchFn(ctx, bucketID, folderPrefix, topicID)
	}
	return nil
}

func (m *MockBatchPublisher) GetCalls() []PublishBatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]PublishBatchCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
