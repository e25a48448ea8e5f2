package media

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStorage stores assets in a MinIO bucket and serves them from a
// public base URL.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. http://localhost:9000
	log       *zap.Logger
}

// MinioConfig holds the connection settings for MinIO
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// NewMinioStorage connects to MinIO and ensures the bucket exists
func NewMinioStorage(ctx context.Context, cfg MinioConfig, log *zap.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		log:       log,
	}, nil
}

// Upload stores the local file under a fresh object key and returns the
// durable URL. Video uploads are probed for their duration.
func (s *MinioStorage) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	if localPath == "" {
		return nil, fmt.Errorf("local path is empty")
	}

	objectName := objectKey(localPath, kind)
	opts := minio.PutObjectOptions{ContentType: contentTypeFor(localPath, kind)}

	if _, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, opts); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	asset := &Asset{URL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)}

	if kind == KindVideo {
		duration, err := probeDuration(localPath)
		if err != nil {
			// The asset is already durable; a missing duration is not fatal.
			s.log.Warn("failed to probe video duration",
				zap.String("object", objectName),
				zap.Error(err))
		} else {
			asset.Duration = duration
		}
	}

	return asset, nil
}

// Delete removes the object behind a previously returned URL
func (s *MinioStorage) Delete(ctx context.Context, rawURL string) error {
	objectName, err := s.objectNameFromURL(rawURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// objectNameFromURL strips the public base and bucket from a durable URL
func (s *MinioStorage) objectNameFromURL(rawURL string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(rawURL, prefix) {
		return "", fmt.Errorf("url %q does not belong to this storage", rawURL)
	}
	objectName := strings.TrimPrefix(rawURL, prefix)
	if objectName == "" {
		return "", fmt.Errorf("url %q carries no object name", rawURL)
	}
	return objectName, nil
}

// objectKey builds a collision-free object name, preserving the extension
func objectKey(localPath string, kind Kind) string {
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), strings.ToLower(path.Ext(localPath)))
}

func contentTypeFor(localPath string, kind Kind) string {
	switch strings.ToLower(path.Ext(localPath)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	default:
		if kind == KindVideo {
			return "video/mp4"
		}
		return "application/octet-stream"
	}
}
