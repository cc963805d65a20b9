package templates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

const (
	keyPrefix       = "wrappers/"
	maxWrapperBytes = 1 << 20 // 1 MB
)

// objectAPI is the subset of the S3 client the store uses.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps wrappers in a bucket under wrappers/<problem>/<language>.txt.
type S3Store struct {
	client objectAPI
	bucket string
}

// NewS3Store loads the default AWS configuration and instruments the client with X-Ray.
func NewS3Store(ctx context.Context, bucket string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("templates: empty bucket name")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("templates: load aws config: %w", err)
	}
	awsv2.AWSV2Instrumentor(&cfg.APIOptions)

	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func newS3StoreWithClient(client objectAPI, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// GetWrapper fetches the wrapper object.
func (s *S3Store) GetWrapper(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	key, err := Key(problemID, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWrapperNotFound, err)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyPrefix + key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", domain.ErrWrapperNotFound
		}
		return "", fmt.Errorf("templates: get s3://%s/%s%s: %w", s.bucket, keyPrefix, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxWrapperBytes))
	if err != nil {
		return "", fmt.Errorf("templates: read s3 object: %w", err)
	}
	return string(data), nil
}

// PutWrapper uploads a wrapper as text/plain.
func (s *S3Store) PutWrapper(ctx context.Context, problemID string, lang domain.Language, wrapper string) error {
	key, err := Key(problemID, lang)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(keyPrefix + key),
		Body:        strings.NewReader(wrapper),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("templates: put s3://%s/%s%s: %w", s.bucket, keyPrefix, key, err)
	}
	return nil
}
