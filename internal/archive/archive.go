// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package archive keeps a raw copy of every accepted JSONL upload in an
// S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
)

const contentTypeJSONL = "application/x-ndjson"

// Archiver stores raw uploads.
type Archiver interface {
	// Store writes data under a new object name for ownerID and returns
	// the object name.
	Store(ctx context.Context, ownerID int64, data []byte) (string, error)
}

// MinioArchiver writes uploads to a bucket through the MinIO client.
type MinioArchiver struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// New returns a [MinioArchiver] when cfg.Endpoint is set, and a [Nop]
// archiver otherwise.
func New(ctx context.Context, cfg config.Archive, log *logger.Logger) (Archiver, error) {
	if cfg.Endpoint == "" {
		log.Info().Msg("upload archive disabled")
		return Nop{}, nil
	}

	return NewMinioArchiver(ctx, cfg, "")
}

// NewMinioArchiver connects to cfg.Endpoint and creates the bucket when it
// does not exist. A non-empty region skips the bucket location lookup.
func NewMinioArchiver(ctx context.Context, cfg config.Archive, region string) (*MinioArchiver, error) {
	if cfg.Bucket == "" {
		return nil, ErrEmptyBucket
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectingArchive, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectingArchive, err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCreatingBucket, err)
		}
	}

	return &MinioArchiver{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

func (a *MinioArchiver) Store(ctx context.Context, ownerID int64, data []byte) (string, error) {
	name := objectName(ownerID, a.now(), uuid.NewString())

	_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeJSONL,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoringObject, err)
	}

	return name, nil
}

// Nop discards uploads.
type Nop struct{}

func (Nop) Store(context.Context, int64, []byte) (string, error) {
	return "", nil
}

// objectName lays uploads out as uploads/<owner>/<yyyy>/<mm>/<timestamp>-<id>.jsonl.
func objectName(ownerID int64, at time.Time, id string) string {
	at = at.UTC()
	return fmt.Sprintf("uploads/%d/%s/%s-%s.jsonl", ownerID, at.Format("2006/01"), at.Format("20060102T150405Z"), id)
}
