package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"google.golang.org/api/googleapi"
)

type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCS{client: client, bucket: client.Bucket(bucket)}, nil
}

func (g *GCS) Save(ctx context.Context, key string, data []byte) error {
	writer := g.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = "application/pdf"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write to GCS: %w", describe(err))
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS write: %w", describe(err))
	}
	return nil
}

func (g *GCS) Load(ctx context.Context, key string) ([]byte, error) {
	reader, err := g.bucket.Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, apperr.NotFound("Resume not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS object: %w", describe(err))
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func describe(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden {
		return fmt.Errorf("access to the resume bucket was denied: %w", err)
	}
	return err
}
