package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"catalog-service/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageUploader stores binary image payloads and returns a stable reference
// usable as an image or gallery entry. The catalog treats the reference as
// opaque.
type ImageUploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	PresignedPut(ctx context.Context, filename, contentType string, expiresSeconds int64) (uploadURL, key, publicURL string, err error)
}

// S3Uploader uploads images to S3 (or an S3-compatible endpoint such as
// LocalStack) and builds public URLs from the CDN domain when configured.
type S3Uploader struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	prefix        string
	endpoint      string
	cdnDomain     string
}

func NewS3Uploader(client *s3.Client, presignClient *s3.PresignClient, bucket, prefix, endpoint, cdnDomain string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		presignClient: presignClient,
		bucket:        bucket,
		prefix:        prefix,
		endpoint:      endpoint,
		cdnDomain:     cdnDomain,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", errs.Storage("open upload", err)
	}
	defer file.Close()

	key := u.objectKey(fileHeader.Filename)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", errs.Storage("upload image", err)
	}

	return u.publicURL(key), nil
}

// PresignedPut returns a presigned PUT URL, the object key, and the public
// URL the object will be served from.
func (u *S3Uploader) PresignedPut(ctx context.Context, filename, contentType string, expiresSeconds int64) (string, string, string, error) {
	key := u.objectKey(filename)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := u.presignClient.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(expiresSeconds) * time.Second
	})
	if err != nil {
		return "", "", "", errs.Storage("presign put object", err)
	}

	return presignedReq.URL, key, u.publicURL(key), nil
}

func (u *S3Uploader) objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s%s%s", u.prefix, uuid.NewString(), ext)
}

func (u *S3Uploader) publicURL(key string) string {
	if u.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", strings.TrimRight(u.cdnDomain, "/"), key)
	}
	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.endpoint, "/"), u.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
}
