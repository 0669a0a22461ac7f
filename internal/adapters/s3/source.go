// Package s3 loads documents stored as objects in S3 or a compatible store.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"vartree/internal/adapters/codec"
	"vartree/internal/application"
	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// API defines the subset of the S3 client interface used by the source.
// *s3.Client satisfies it.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source implements ports.DocumentSource for a single object
type Source struct {
	client API
	bucket string
	key    string
	opts   codec.Options
}

// Ensure Source implements DocumentSource
var _ ports.DocumentSource = (*Source)(nil)

// NewSource creates a source reading s3://bucket/key
func NewSource(client API, bucket, key string, opts codec.Options) (*Source, error) {
	if client == nil {
		return nil, errors.New("s3: client is required")
	}
	if err := application.ValidateRequired("bucket", bucket); err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("key", key); err != nil {
		return nil, err
	}
	return &Source{client: client, bucket: bucket, key: key, opts: opts}, nil
}

// Describe implements ports.DocumentSource
func (s *Source) Describe() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Load fetches the object and decodes it like a file with the same name
func (s *Source) Load(ctx context.Context) (domain.Value, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			err = application.ErrNotFound
		}
		return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "open", Err: err}
	}
	defer out.Body.Close()

	logger.Debug("reading object", "source", s.Describe(), "size", aws.ToInt64(out.ContentLength))
	v, err := codec.Read(out.Body, s.key, s.opts)
	if err != nil {
		return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "decode", Err: err}
	}
	return v, nil
}

// isNotFound checks if an error indicates the object was not found.
func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "404"
	}
	return false
}

// ParseURI splits s3://bucket/key
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: not an s3 uri: %s", application.ErrInvalidSource, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: expected s3://bucket/key, got %s", application.ErrInvalidSource, uri)
	}
	return bucket, key, nil
}
