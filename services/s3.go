package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"animix/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader кладет бинарный объект в хранилище и возвращает публичный URL
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// S3Uploader загрузчик в любое S3-совместимое хранилище (AWS S3, MinIO)
type S3Uploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewS3Uploader(conf config.S3Config) (*S3Uploader, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	publicURL := conf.PublicURL
	if publicURL == "" {
		scheme := "http"
		if conf.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, conf.Endpoint)
	}

	return &S3Uploader{
		client:    client,
		bucket:    conf.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key), nil
}
