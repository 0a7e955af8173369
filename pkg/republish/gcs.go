package republish

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// ErrObjectStore wraps failures from the storage backend while listing a
// batch, so callers can tell a broken listing from an empty one.
var ErrObjectStore = errors.New("object store listing failed")

// StorageObject identifies one object in a bucket.
type StorageObject struct {
	Bucket string
	Name   string
}

// ObjectLister lists the objects in a bucket whose names start with a prefix.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucketID, prefix string) ([]StorageObject, error)
}

// GCSObjectLister implements ObjectLister against Google Cloud Storage.
type GCSObjectLister struct {
	client *storage.Client
}

// NewGCSObjectLister wraps a GCS client for batch listing.
func NewGCSObjectLister(client *storage.Client) (*GCSObjectLister, error) {
	if client == nil {
		return nil, errors.New("GCS client cannot be nil")
	}
	return &GCSObjectLister{client: client}, nil
}

var _ ObjectLister = &GCSObjectLister{}

// ListObjects returns every object under the prefix, in the iteration order
// of the storage API. An empty result is not an error; the caller decides
// whether an empty batch is acceptable.
func (l *GCSObjectLister) ListObjects(ctx context.Context, bucketID, prefix string) ([]StorageObject, error) {
	var objects []StorageObject
	it := l.client.Bucket(bucketID).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %s, prefix %q: %v", ErrObjectStore, bucketID, prefix, err)
		}
		objects = append(objects, StorageObject{Bucket: bucketID, Name: attrs.Name})
	}
	return objects, nil
}
