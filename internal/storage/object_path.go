package storage

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

var errEmptyPayload = errors.New("empty payload")

func sanitizePathSegment(value string) string {
	return sanitizeSegment(value, false)
}

// sanitizeName is sanitizePathSegment without lowercasing.
func sanitizeName(value string) string {
	return sanitizeSegment(value, true)
}

func sanitizeSegment(value string, keepCase bool) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			if !keepCase {
				ch += 32
			}
			builder.WriteByte(ch)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return "json"
	}
	return sanitizePathSegment(trimmed)
}

// objectKey lays exports out as <kind>/<yyyy>/<mm>/<dd>/<name>.<ext>.
// obj.At dates the key; now is used when it is zero.
func objectKey(obj Object, now time.Time) string {
	if !obj.At.IsZero() {
		now = obj.At.UTC()
	}
	kind := sanitizePathSegment(obj.Kind)
	if kind == "" {
		kind = "misc"
	}
	base := sanitizeName(strings.ReplaceAll(strings.TrimSpace(obj.Name), " ", "-"))
	base = strings.Trim(base, "-_")
	if base == "" {
		base = fmt.Sprintf("%d", now.UnixNano())
	}
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())
	return path.Join(kind, datedir, base+"."+normalizeExtension(obj.Extension))
}

func contentType(ext string) string {
	typeName := mime.TypeByExtension("." + normalizeExtension(ext))
	if typeName == "" {
		return "application/octet-stream"
	}
	return typeName
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

// remoteKey validates obj and builds the key used by object stores.
func remoteKey(obj Object, prefix string) (string, error) {
	if len(obj.Body) == 0 {
		return "", errEmptyPayload
	}
	key := objectKey(obj, time.Now().UTC())
	if prefix != "" {
		key = joinPrefix(prefix, key)
	}
	return key, nil
}
