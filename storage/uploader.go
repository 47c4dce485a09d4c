package storage

import "context"

// UploadResult describes a stored object. Location is empty when no public base URL
// is configured.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location,omitempty"`
	ETag     string `json:"etag,omitempty"`
}

// PutOptions are per-object headers.
type PutOptions struct {
	ContentType  string
	CacheControl string
}

// ObjectStore is a flat key/value blob store. Implementations must be safe for
// concurrent use.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, opts PutOptions) (*UploadResult, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
