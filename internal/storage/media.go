package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// MediaStore deletes listing media blobs by stored path.
type MediaStore interface {
	Remove(ctx context.Context, path string) error
}

// CloudStorageClient backs MediaStore with a GCS bucket.
type CloudStorageClient struct {
	client *storage.Client
	bucket string
}

// NewCloudStorageClient connects to the media bucket.
func NewCloudStorageClient(ctx context.Context, bucket, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &CloudStorageClient{client: client, bucket: bucket}, nil
}

// Remove deletes a single object. Stored media paths may carry the bucket
// name as a prefix; it is stripped before the object lookup.
func (c *CloudStorageClient) Remove(ctx context.Context, path string) error {
	object := strings.TrimPrefix(path, c.bucket+"/")
	if object == "" {
		return nil
	}
	return c.client.Bucket(c.bucket).Object(object).Delete(ctx)
}

// Close releases the underlying client.
func (c *CloudStorageClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
