// Package s3store keeps each setting as a plain-text object in S3 so the
// excluded-domain list can be edited or audited with ordinary S3 tooling.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of the S3 client the repository calls.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// SettingsRepo implements settings.Repository with one object per key.
type SettingsRepo struct {
	client API
	bucket string
	prefix string
}

// NewSettingsRepo creates an S3-backed settings repository. Objects are
// written to <prefix>/<key>.txt.
func NewSettingsRepo(client API, bucket, prefix string) *SettingsRepo {
	return &SettingsRepo{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (r *SettingsRepo) objectKey(key string) string {
	return path.Join(r.prefix, key+".txt")
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("s3 get %s: %w", r.objectKey(key), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("reading s3 object %s: %w", r.objectKey(key), err)
	}
	return string(data), true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", r.objectKey(key), err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (r *SettingsRepo) Ping(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)})
	return err
}
