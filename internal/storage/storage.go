package storage

import (
	"context"
	"crm/internal/config"
	"fmt"
	"strings"
	"time"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

// Object is one export file.
//
// Kind groups objects by record type ("clients", "contracts"...). Name is the
// base file name without extension; an empty name falls back to a timestamp.
// At dates the key; the archive clock is used when it is zero.
type Object struct {
	Kind      string
	Name      string
	At        time.Time
	Extension string
	Body      []byte
	Overwrite bool
}

// Archive persists export files and returns a backend specific key.
type Archive interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// NewArchive 根据配置实例化存储后端。
func NewArchive(cfg config.Config) (Archive, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalArchive(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Archive(cfg)
	case TypeOSS:
		return NewOSSArchive(cfg)
	case TypeCOS:
		return NewCOSArchive(cfg)
	case TypeR2:
		return NewR2Archive(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
