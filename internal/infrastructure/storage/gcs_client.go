package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// FileStorage abstracts object storage for gig images, delivery files and
// avatars.
type FileStorage interface {
	UploadFile(ctx context.Context, file io.Reader, folder, filename, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

type GCSClient struct {
	client     *storage.Client
	bucketName string
}

func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadFile stores the object under folder/ with a generated name and
// returns its public URL.
func (g *GCSClient) UploadFile(ctx context.Context, file io.Reader, folder, filename, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("%s/%d_%s%s", folder, time.Now().Unix(), uuid.New().String()[:8], ext)

	bucket := g.client.Bucket(g.bucketName)
	obj := bucket.Object(objectName)

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, objectName), nil
}

// DeleteFile removes the object behind a URL produced by UploadFile.
func (g *GCSClient) DeleteFile(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", g.bucketName)
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("file URL does not belong to bucket %s", g.bucketName)
	}

	objectName := strings.TrimPrefix(fileURL, prefix)

	if err := g.client.Bucket(g.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (g *GCSClient) Close() error {
	return g.client.Close()
}
