package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/pkg/config"
	apperrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

const (
	metaFilename    = "filename"
	metaContentType = "content-type"
)

// Object describes a stored blob opened for streaming.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

// Store persists binary assets in an S3-compatible bucket. Keys are
// server-generated uuids; callers never choose object names.
type Store struct {
	client *s3.Client
	bucket string
	logg   *logger.Logger
}

// NewStore builds a Store against the configured bucket endpoint.
func NewStore(ctx context.Context, cfg config.BlobConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob bucket is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Store{client: client, bucket: cfg.Bucket, logg: logg}, nil
}

// Upload streams the reader into a new object and returns its generated key.
func (s *Store) Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := uuid.NewString()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			metaFilename:    filename,
			metaContentType: contentType,
		},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeDependency, err, "uploading blob")
	}

	return key, nil
}

// Open fetches an object for streaming. The caller owns Body and must close it.
func (s *Store) Open(ctx context.Context, key string) (*Object, error) {
	if _, err := uuid.Parse(key); err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid image id")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.New(apperrors.CodeNotFound, "image not found").
				WithAppCode(apperrors.AppNotFound)
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "fetching blob")
	}

	obj := &Object{Body: out.Body}
	if out.ContentType != nil {
		obj.ContentType = *out.ContentType
	}
	if ct, ok := out.Metadata[metaContentType]; ok && obj.ContentType == "" {
		obj.ContentType = ct
	}
	if name, ok := out.Metadata[metaFilename]; ok {
		obj.Filename = name
	}
	if out.ContentLength != nil {
		obj.Size = *out.ContentLength
	}
	return obj, nil
}

// Delete removes an object. Failures are logged, never propagated; callers
// treat cleanup as best-effort.
func (s *Store) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"blob_key": key, "error": err.Error()})
		s.logg.Warn(ctx, "blob delete failed")
	}
}
