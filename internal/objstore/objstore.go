// Package objstore provides the object storage client used to fetch
// and push the remote catalog snapshot.
//
// The catalog depends only on the Client interface; GCS is the concrete
// backend. Any failure to reach the remote or to find the object is
// surfaced as a ConnectivityError so callers can degrade to the local
// snapshot.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Client downloads and uploads single named blobs in a bucket.
type Client interface {
	// Download fetches an object's full contents.
	Download(ctx context.Context, bucket, object string) ([]byte, error)

	// Upload stores the file at localPath as the named object.
	Upload(ctx context.Context, bucket, object, localPath string) error
}

// ConnectivityError indicates the remote store is unreachable or the
// requested object is missing. Callers recover by falling back to the
// local snapshot.
type ConnectivityError struct {
	Bucket string
	Object string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("object store unreachable: %s/%s: %v", e.Bucket, e.Object, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivity reports whether err is a connectivity failure.
// Uses errors.As to handle wrapped errors.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// GCS is the Google Cloud Storage backed Client.
type GCS struct {
	client *storage.Client
}

// NewGCS creates a GCS client. With a non-empty credentialsFile the
// client authenticates with that service account key; otherwise it uses
// application default credentials.
func NewGCS(ctx context.Context, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account key not found at path: %s", credentialsFile)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCS{client: client}, nil
}

// Download fetches the object's full contents. Any read failure,
// including a missing object, is reported as a ConnectivityError.
func (g *GCS) Download(ctx context.Context, bucket, object string) ([]byte, error) {
	reader, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, &ConnectivityError{Bucket: bucket, Object: object, Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &ConnectivityError{Bucket: bucket, Object: object, Err: err}
	}
	return data, nil
}

// Upload stores the local file as the named object.
func (g *GCS) Upload(ctx context.Context, bucket, object, localPath string) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open the local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	obj := g.client.Bucket(bucket).Object(object)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := io.Copy(writer, localFile); err != nil {
		return fmt.Errorf("failed to copy %s to object %s/%s: %w", localPath, bucket, object, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %s/%s: %w", bucket, object, err)
	}
	return nil
}

// Close releases the underlying storage client.
func (g *GCS) Close() error {
	return g.client.Close()
}
