// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// ObjectAPI is the part of the S3 client the store needs
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client for AWS or any S3-compatible endpoint
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, storageError("load aws config", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Store keeps users.json and votes.json as objects in a bucket.
// A missing object reads as an empty collection.
type S3Store struct {
	client ObjectAPI
	bucket string
	prefix string
}

func NewS3Store(client ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) GetUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.get(ctx, usersDocument)
	if err != nil {
		return nil, err
	}
	users, err := decodeCollection[models.User](data)
	if err != nil {
		return nil, storageError("decode users", err)
	}
	return users, nil
}

func (s *S3Store) SaveUsers(ctx context.Context, users []models.User) error {
	data, err := encodeCollection(users)
	if err != nil {
		return storageError("encode users", err)
	}
	return s.put(ctx, usersDocument, data)
}

func (s *S3Store) GetVotes(ctx context.Context) ([]models.Vote, error) {
	data, err := s.get(ctx, votesDocument)
	if err != nil {
		return nil, err
	}
	votes, err := decodeCollection[models.Vote](data)
	if err != nil {
		return nil, storageError("decode votes", err)
	}
	return votes, nil
}

func (s *S3Store) SaveVotes(ctx context.Context, votes []models.Vote) error {
	data, err := encodeCollection(votes)
	if err != nil {
		return storageError("encode votes", err)
	}
	return s.put(ctx, votesDocument, data)
}

func (s *S3Store) Close() error {
	return nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + name
}

func (s *S3Store) get(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, storageError("get "+name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, storageError("read "+name, err)
	}
	return data, nil
}

func (s *S3Store) put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return storageError("put "+name, err)
	}

	slog.Info("collection saved", "bucket", s.bucket, "key", s.key(name), "size", humanize.Bytes(uint64(len(data))))
	return nil
}
