// Package storage wraps the object store holding patient file uploads.
package storage

import "context"

// ObjectStorage persists raw file bytes under generated keys. Upload must
// report failure for any non-success backend status; callers rely on that to
// avoid writing metadata for files that never landed.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
	PresignedGetURL(ctx context.Context, key string) (string, error)
}
