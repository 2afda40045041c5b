// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures the S3 backend.
type S3Config struct {
	Bucket  string // Destination bucket (required)
	Prefix  string // Key prefix inside the bucket (optional)
	Region  string // AWS region (optional, uses the default chain if empty)
	Profile string // AWS credential profile (optional)
}

// S3API abstracts the PutObject call for testing.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes artifacts as objects in an S3 bucket. Locations are
// s3://bucket/key URIs.
type S3Store struct {
	api    S3API
	bucket string
	prefix string
}

// NewS3Store creates an S3Store using the standard AWS credential chain.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: S3 bucket is required", ErrPersistence)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %v", ErrPersistence, err)
	}
	return NewS3StoreWithAPI(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3StoreWithAPI creates an S3Store with a pre-configured API
// implementation. Used for testing with mock clients.
func NewS3StoreWithAPI(api S3API, cfg S3Config) *S3Store {
	return &S3Store{
		api:    api,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
}

// Put uploads data as an object named prefix/key.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	if _, err := cleanKey(key); err != nil {
		return "", err
	}

	objectKey := path.Clean(key)
	if s.prefix != "" {
		objectKey = s.prefix + "/" + objectKey
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(objectKey)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: uploading s3://%s/%s: %v", ErrPersistence, s.bucket, objectKey, err)
	}
	return "s3://" + s.bucket + "/" + objectKey, nil
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".svg":
		return "image/svg+xml"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
