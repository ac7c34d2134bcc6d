package session

import (
	"context"

	"bijou/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket driver
	_ "gocloud.dev/blob/memblob"  // mem:// bucket driver, used in tests
	"gocloud.dev/gcerrors"
)

// BlobStore implements SessionStore on a gocloud bucket, one object per
// key. With a file:// bucket this mirrors the browser's per-key local
// storage slots on disk; tests use mem://.
type BlobStore struct {
	bucket *blob.Bucket
}

// NewBlobStore opens the bucket behind the given URL (file:///path, mem://).
func NewBlobStore(ctx context.Context, bucketURL string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open session bucket %s", bucketURL)
	}

	return &BlobStore{bucket: bucket}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *BlobStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrap(err, "blob read failed")
	}

	return string(raw), nil
}

// Set stores value under key.
func (s *BlobStore) Set(ctx context.Context, key string, value string) error {
	if err := s.bucket.WriteAll(ctx, key, []byte(value), nil); err != nil {
		return errors.Wrap(err, "blob write failed")
	}

	return nil
}

// Delete removes key; an absent key is not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "blob delete failed")
	}

	return nil
}

// Close releases the bucket.
func (s *BlobStore) Close() error {
	return s.bucket.Close()
}
