package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MinioConfig holds connection settings for an S3-compatible archive.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchive is an Archiver backed by an S3-compatible object store.
// Folder segments become key prefixes; there are no real directories.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive connects to the object store and ensures the bucket exists.
func NewMinioArchive(ctx context.Context, cfg MinioConfig) (*MinioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// EnsurePath returns the key prefix for the segments. Object stores need
// no folder creation.
func (a *MinioArchive) EnsurePath(ctx context.Context, segments ...string) (Folder, error) {
	return Folder(strings.Join(segments, "/")), nil
}

// Upload puts data under the folder prefix.
func (a *MinioArchive) Upload(ctx context.Context, folder Folder, name string, data []byte) (UploadInfo, error) {
	key := string(folder) + "/" + name
	info, err := a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xlsxContentType})
	if err != nil {
		return UploadInfo{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return UploadInfo{
		ID:   info.ETag,
		Name: name,
		Link: fmt.Sprintf("s3://%s/%s", a.bucket, key),
	}, nil
}
