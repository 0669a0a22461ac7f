// Package opener wires source URIs to the document source adapters.
package opener

import (
	"context"
	"fmt"
	"io"
	"os"

	"vartree/internal/adapters/codec"
	"vartree/internal/adapters/filesystem"
	"vartree/internal/adapters/s3"
	"vartree/internal/adapters/sqlite"
	"vartree/internal/application"
	"vartree/internal/config"
	"vartree/internal/ports"
)

// S3ClientFunc builds the S3 client for an s3:// source
type S3ClientFunc func(ctx context.Context, cfg s3.ClientConfig) (s3.API, error)

// Opener implements ports.SourceOpener over the filesystem, sqlite and s3
// adapters.
type Opener struct {
	Codec codec.Options
	S3    s3.ClientConfig
	Stdin io.Reader

	newS3Client S3ClientFunc
}

// Ensure Opener implements SourceOpener
var _ ports.SourceOpener = (*Opener)(nil)

// New creates an opener configured from cfg
func New(cfg config.Config) *Opener {
	return &Opener{
		Codec: codec.Options{Charset: cfg.Charset},
		S3: s3.ClientConfig{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		},
		Stdin: os.Stdin,
		newS3Client: func(ctx context.Context, cfg s3.ClientConfig) (s3.API, error) {
			return s3.NewClient(ctx, cfg)
		},
	}
}

// WithS3Client replaces the S3 client factory
func (o *Opener) WithS3Client(fn S3ClientFunc) *Opener {
	o.newS3Client = fn
	return o
}

// Open implements ports.SourceOpener
func (o *Opener) Open(ctx context.Context, spec ports.SourceSpec) (ports.DocumentSource, error) {
	switch spec.Kind {
	case ports.SourceFile:
		return filesystem.NewSource(spec.Path, o.Codec), nil

	case ports.SourceStdin:
		return filesystem.NewReaderSource(o.Stdin, o.Codec), nil

	case ports.SourceSQLite:
		store, err := sqlite.Open(spec.Path, spec.Table)
		if err != nil {
			return nil, err
		}
		return store, nil

	case ports.SourceS3:
		if o.newS3Client == nil {
			return nil, fmt.Errorf("%w: s3 is not configured", application.ErrInvalidSource)
		}
		client, err := o.newS3Client(ctx, o.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		src, err := s3.NewSource(client, spec.Bucket, spec.Key, o.Codec)
		if err != nil {
			return nil, err
		}
		return src, nil

	default:
		return nil, fmt.Errorf("%w: unknown source kind %s", application.ErrInvalidSource, spec.Kind)
	}
}
