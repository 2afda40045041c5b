// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (m *mockS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.inputs = append(m.inputs, params)
	m.bodies = append(m.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	api := &mockS3{}
	s := NewS3StoreWithAPI(api, S3Config{Bucket: "charts", Prefix: "/dcharts/"})

	loc, err := s.Put(context.Background(), "u-1/asha_rasi.svg", []byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://charts/dcharts/u-1/asha_rasi.svg", loc)

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, "charts", aws.ToString(in.Bucket))
	assert.Equal(t, "dcharts/u-1/asha_rasi.svg", aws.ToString(in.Key))
	assert.Equal(t, "image/svg+xml", aws.ToString(in.ContentType))
	assert.Equal(t, "<svg/>", api.bodies[0])
}

func TestS3Store_NoPrefix(t *testing.T) {
	api := &mockS3{}
	s := NewS3StoreWithAPI(api, S3Config{Bucket: "charts"})

	loc, err := s.Put(context.Background(), "u-1/a_ALL_dcharts.json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "s3://charts/u-1/a_ALL_dcharts.json", loc)
	assert.Equal(t, "application/json", aws.ToString(api.inputs[0].ContentType))
}

func TestS3Store_Error(t *testing.T) {
	s := NewS3StoreWithAPI(&mockS3{err: errors.New("access denied")}, S3Config{Bucket: "charts"})

	_, err := s.Put(context.Background(), "u/x.txt", []byte("x"))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.ErrorIs(t, err, ErrPersistence)
}
