package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Object key prefixes. Voice recordings and note attachments share the
// bucket but live under separate prefixes.
const (
	PathVoice       = "voice/"
	PathAttachments = "attachments/"
)

type S3Client interface {
	// UploadFile writes the payload under the given key, overwriting any
	// existing object.
	UploadFile(ctx context.Context, data []byte, key string) error

	// DeleteFile removes the object under the given key. Deleting a missing
	// object is not an error.
	DeleteFile(ctx context.Context, key string) error
}

type simpleStorageClient struct {
	client *s3.Client
	bucket string
}

func NewS3Client(ctx context.Context) (S3Client, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET_NAME is not set")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &simpleStorageClient{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func (s *simpleStorageClient) UploadFile(ctx context.Context, data []byte, key string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	return err
}

func (s *simpleStorageClient) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}
