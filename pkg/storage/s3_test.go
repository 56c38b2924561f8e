package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit"
	"github.com/dmitrymomot/uploadkit/pkg/storage"
)

// mockS3Client implements storage.S3Client with function fields.
type mockS3Client struct {
	putObject    func(ctx context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	getObject    func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	headObject   func(ctx context.Context, params *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
	deleteObject func(ctx context.Context, params *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putObject(ctx, params)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getObject(ctx, params)
}

func (m *mockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return m.headObject(ctx, params)
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return m.deleteObject(ctx, params)
}

type apiError struct{ code string }

func (e *apiError) Error() string { return e.code }

func (e *apiError) ErrorCode() string { return e.code }

func (e *apiError) ErrorMessage() string { return e.code }

func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func newS3(t *testing.T, client storage.S3Client, cfg storage.S3Config) *storage.S3 {
	t.Helper()
	s, err := storage.NewS3(context.Background(), cfg, storage.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3(t *testing.T) {
	t.Parallel()

	t.Run("requires bucket and region", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewS3(context.Background(), storage.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		_, err = storage.NewS3(context.Background(), storage.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("default url uses virtual-hosted style", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, &mockS3Client{}, storage.S3Config{Bucket: "uploads", Region: "eu-west-1"})
		assert.Equal(t, "https://uploads.s3.eu-west-1.amazonaws.com/avatars/1.jpg", s.URL("avatars/1.jpg"))
	})

	t.Run("custom endpoint url", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, &mockS3Client{}, storage.S3Config{
			Bucket:   "uploads",
			Region:   "us-east-1",
			Endpoint: "http://localhost:9000",
		})
		assert.Equal(t, "http://localhost:9000/uploads/f.txt", s.URL("f.txt"))
	})

	t.Run("explicit base url wins", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, &mockS3Client{}, storage.S3Config{
			Bucket:  "uploads",
			Region:  "us-east-1",
			BaseURL: "https://cdn.example.com",
		})
		assert.Equal(t, "https://cdn.example.com/f.txt", s.URL("f.txt"))
	})
}

func TestS3Upload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("sends content type from metadata", func(t *testing.T) {
		t.Parallel()
		var got *s3.PutObjectInput
		client := &mockS3Client{
			putObject: func(_ context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
				got = params
				return &s3.PutObjectOutput{}, nil
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})

		md := uploadkit.Metadata{MIMEType: "image/png"}
		require.NoError(t, s.Upload(ctx, strings.NewReader("data"), "pics/1.png", md))

		require.NotNil(t, got)
		assert.Equal(t, "b", *got.Bucket)
		assert.Equal(t, "pics/1.png", *got.Key)
		assert.Equal(t, "image/png", *got.ContentType)
	})

	t.Run("falls back to octet-stream", func(t *testing.T) {
		t.Parallel()
		var got *s3.PutObjectInput
		client := &mockS3Client{
			putObject: func(_ context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
				got = params
				return &s3.PutObjectOutput{}, nil
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})

		require.NoError(t, s.Upload(ctx, strings.NewReader("data"), "blob", uploadkit.Metadata{}))
		assert.Equal(t, "application/octet-stream", *got.ContentType)
	})

	t.Run("traversal keys rejected before any call", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, &mockS3Client{}, storage.S3Config{Bucket: "b", Region: "r"})
		err := s.Upload(ctx, strings.NewReader("x"), "../escape", uploadkit.Metadata{})
		assert.ErrorIs(t, err, storage.ErrInvalidID)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			putObject: func(_ context.Context, _ *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
				return nil, &apiError{code: "AccessDenied"}
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		err := s.Upload(ctx, strings.NewReader("x"), "f", uploadkit.Metadata{})
		assert.ErrorIs(t, err, storage.ErrAccessDenied)
	})
}

func TestS3Open(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("streams the object body", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			getObject: func(_ context.Context, _ *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("object data"))}, nil
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})

		rc, err := s.Open(ctx, "f.txt")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "object data", string(data))
	})

	t.Run("missing key maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			getObject: func(_ context.Context, _ *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
				return nil, &types.NoSuchKey{}
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		_, err := s.Open(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestS3ExistsDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("exists true", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			headObject: func(_ context.Context, _ *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
				return &s3.HeadObjectOutput{}, nil
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		ok, err := s.Exists(ctx, "f")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("exists false on not found, no error", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			headObject: func(_ context.Context, _ *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
				return nil, &types.NotFound{}
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		ok, err := s.Exists(ctx, "f")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete checks the object first", func(t *testing.T) {
		t.Parallel()
		deleted := false
		client := &mockS3Client{
			headObject: func(_ context.Context, _ *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
				return &s3.HeadObjectOutput{}, nil
			},
			deleteObject: func(_ context.Context, _ *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
				deleted = true
				return &s3.DeleteObjectOutput{}, nil
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		require.NoError(t, s.Delete(ctx, "f"))
		assert.True(t, deleted)
	})

	t.Run("delete of missing object fails", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{
			headObject: func(_ context.Context, _ *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
				return nil, &types.NotFound{}
			},
		}
		s := newS3(t, client, storage.S3Config{Bucket: "b", Region: "r"})
		assert.ErrorIs(t, s.Delete(ctx, "f"), storage.ErrNotFound)
	})
}
