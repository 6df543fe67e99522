package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func TestSettingsRepo_RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	repo := NewSettingsRepo(fake, "ops-bucket", "/edf/settings/")
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "excluded_email_domains")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "excluded_email_domains", "example.com\r\nspam.test"))
	assert.Contains(t, fake.objects, "ops-bucket/edf/settings/excluded_email_domains.txt")

	v, found, err := repo.Get(ctx, "excluded_email_domains")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "example.com\r\nspam.test", v)
}

func TestSettingsRepo_Errors(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, err: errors.New("access denied")}
	repo := NewSettingsRepo(fake, "ops-bucket", "")
	ctx := context.Background()

	_, _, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, fake.err)
	assert.ErrorIs(t, repo.Set(ctx, "k", "v"), fake.err)
	assert.ErrorIs(t, repo.Ping(ctx), fake.err)
}
