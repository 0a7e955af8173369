package republish

import (
	"encoding/json"
	"fmt"
)

// Attribute keys attached to every republished message. They mirror the
// attributes of a native GCS object-change notification so that subscribers
// cannot tell a republished file from a freshly landed one, except for the
// event type.
const (
	AttrPayloadFormat = "payloadFormat"
	AttrBucketID      = "bucketId"
	AttrObjectID      = "objectId"
	AttrEventType     = "eventType"

	// PayloadFormatJSONAPIV1 marks the payload as the JSON API object representation.
	PayloadFormatJSONAPIV1 = "JSON_API_V1"
	// EventTypeRepublish marks messages produced by this tool rather than by GCS itself.
	EventTypeRepublish = "DAPLA-REPUBLISH"
)

// ObjectNotification is the message payload describing one storage object,
// shaped like the JSON API v1 object resource in a GCS notification.
type ObjectNotification struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
}

// NewObjectNotification builds the notification for a single object. Name
// carries the bucket-qualified object path.
func NewObjectNotification(bucketID, objectID string) ObjectNotification {
	return ObjectNotification{
		Kind:   "storage#object",
		Name:   fmt.Sprintf("%s/%s", bucketID, objectID),
		Bucket: bucketID,
	}
}

// Encode renders the notification as the JSON payload published to Pub/Sub.
func (n ObjectNotification) Encode() ([]byte, error) {
	return json.Marshal(n)
}

// PublishAttributes returns the message attributes for one republished object.
func PublishAttributes(bucketID, objectID string) map[string]string {
	return map[string]string{
		AttrPayloadFormat: PayloadFormatJSONAPIV1,
		AttrBucketID:      bucketID,
		AttrObjectID:      objectID,
		AttrEventType:     EventTypeRepublish,
	}
}
