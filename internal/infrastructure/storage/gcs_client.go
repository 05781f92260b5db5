package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

// UploadListingImage stores a listing image at
// {folder}/{timestamp}_{index}.{ext} and returns its public URL.
func (c *CloudStorageClient) UploadListingImage(ctx context.Context, file io.Reader, folder string, index int, ext string) (string, error) {
	objectName := fmt.Sprintf("%s/%d_%d%s", folder, time.Now().UnixMilli(), index, normalizeExt(ext))
	return c.upload(ctx, file, objectName, contentTypeFor(ext))
}

// UploadAvatar stores a profile photo under avatars/{uid}/.
func (c *CloudStorageClient) UploadAvatar(ctx context.Context, file io.Reader, uid, ext string) (string, error) {
	objectName := fmt.Sprintf("avatars/%s/%d%s", uid, time.Now().UnixMilli(), normalizeExt(ext))
	return c.upload(ctx, file, objectName, contentTypeFor(ext))
}

// UploadKycDocument stores an identity document under kyc/{uid}/.
func (c *CloudStorageClient) UploadKycDocument(ctx context.Context, file io.Reader, uid, filename string) (string, error) {
	objectName := fmt.Sprintf("kyc/%s/%d_%s", uid, time.Now().UnixMilli(), filename)
	return c.upload(ctx, file, objectName, contentTypeFor(path.Ext(filename)))
}

func (c *CloudStorageClient) upload(ctx context.Context, file io.Reader, objectName, contentType string) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object %s: %v", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %v", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

func (c *CloudStorageClient) Delete(ctx context.Context, objectName string) error {
	return c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx)
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func normalizeExt(ext string) string {
	if ext == "" {
		return ".bin"
	}
	if ext[0] != '.' {
		return "." + ext
	}
	return ext
}

func contentTypeFor(ext string) string {
	switch normalizeExt(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
