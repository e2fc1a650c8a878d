package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gstorage "cloud.google.com/go/storage"

	"pomelo/internal/pkg/storage"
)

// GCSStorage Google Cloud Storage 存储
// 凭证走 Application Default Credentials，预签名依赖可签名的服务账号
type GCSStorage struct {
	client        *gstorage.Client
	bucket        *gstorage.BucketHandle
	bucketName    string
	prefix        string // 对象 key 统一前缀，可为空
	presignExpiry int    // 预签名URL过期时间（秒）
}

// NewGCSStorage 创建 GCS 存储
func NewGCSStorage(ctx context.Context, bucketName, prefix string, presignExpiry int) (*GCSStorage, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:        client,
		bucket:        client.Bucket(bucketName),
		bucketName:    bucketName,
		prefix:        strings.Trim(prefix, "/"),
		presignExpiry: presignExpiry,
	}, nil
}

// Upload 上传文件
func (s *GCSStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	obj := s.bucket.Object(s.objectName(key))

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	// Close 才会真正提交对象，必须检查错误
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, obj.ObjectName())
	return url, nil
}

// Download 下载文件
func (s *GCSStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.Object(s.objectName(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return reader, nil
}

// GetPresignedDownloadURL 获取预签名下载URL（V4 签名）
func (s *GCSStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	// 如果配置的过期时间小于请求的过期时间，使用配置的过期时间
	expiry := expiresIn
	if time.Duration(s.presignExpiry)*time.Second < expiresIn {
		expiry = time.Duration(s.presignExpiry) * time.Second
	}

	opts := &gstorage.SignedURLOptions{
		Scheme:  gstorage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	}

	url, err := s.bucket.SignedURL(s.objectName(key), opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return url, nil
}

// Delete 删除文件
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(s.objectName(key)).Delete(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil // 文件不存在，认为删除成功
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *GCSStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.bucket.Object(s.objectName(key)).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}

// GetFileInfo 获取文件信息
func (s *GCSStorage) GetFileInfo(ctx context.Context, key string) (*storage.FileInfo, error) {
	attrs, err := s.bucket.Object(s.objectName(key)).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	contentType := attrs.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &storage.FileInfo{
		Key:          key,
		Size:         attrs.Size,
		ContentType:  contentType,
		ETag:         attrs.Etag,
		LastModified: attrs.Updated,
	}, nil
}

// GetStorageType 获取存储类型
func (s *GCSStorage) GetStorageType() string {
	return string(storage.StorageTypeGCS)
}

// Close 关闭客户端
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// objectName key 加上配置的前缀
func (s *GCSStorage) objectName(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
