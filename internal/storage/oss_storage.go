package storage

import (
	"bytes"
	"context"
	"crm/internal/config"
	"errors"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossArchive struct {
	bucket *oss.Bucket
	prefix string
}

// NewOSSArchive builds an archive on an Aliyun OSS bucket.
func NewOSSArchive(cfg config.Config) (Archive, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	if endpoint == "" {
		return nil, errors.New("storage: missing OSS endpoint")
	}
	bucketName := strings.TrimSpace(cfg.StorageOSSBucket)
	if bucketName == "" {
		return nil, errors.New("storage: missing OSS bucket")
	}
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("storage: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open OSS bucket: %w", err)
	}

	return &ossArchive{
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageOSSPrefix),
	}, nil
}

func (s *ossArchive) Put(ctx context.Context, obj Object) (string, error) {
	key, err := remoteKey(obj, s.prefix)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !obj.Overwrite {
		exists, err := s.bucket.IsObjectExist(key)
		if err != nil {
			return "", fmt.Errorf("check object: %w", err)
		}
		if exists {
			return "", fmt.Errorf("export %s already exists", key)
		}
	}

	options := []oss.Option{oss.WithContext(ctx), oss.ContentType(contentType(obj.Extension))}
	if err := s.bucket.PutObject(key, bytes.NewReader(obj.Body), options...); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

var _ Archive = (*ossArchive)(nil)
