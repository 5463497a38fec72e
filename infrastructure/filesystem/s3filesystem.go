package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3FileSystem stores exported files in a single bucket.
type S3FileSystem struct {
	client *s3.Client
	bucket string
}

func NewS3FileSystem(client *s3.Client, bucket string) *S3FileSystem {
	return &S3FileSystem{client: client, bucket: bucket}
}

func ConnectS3(ctx context.Context, bucket string) (*S3FileSystem, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewS3FileSystem(s3.NewFromConfig(cfg), bucket), nil
}

func (this *S3FileSystem) WriteFile(ctx context.Context, key string, contentType string, body io.ReadSeeker) error {
	_, err := this.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(this.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, this.bucket, err)
	}
	return nil
}

func (this *S3FileSystem) ReadFile(ctx context.Context, key string, outStream io.Writer) error {
	resp, err := this.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(this.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, this.bucket, err)
	}
	defer resp.Body.Close()

	if _, err = io.Copy(outStream, resp.Body); err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, this.bucket, err)
	}
	return nil
}

func (this *S3FileSystem) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(this.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(this.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", this.bucket, err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}
