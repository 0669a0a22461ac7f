package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"vartree/internal/application"
	"vartree/internal/config"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// ParseSourceURI understands a file path, "-" for stdin,
// sqlite://path?table=name and s3://bucket/key.
func ParseSourceURI(uri string) (ports.SourceSpec, error) {
	if err := application.ValidateRequired("sourceURI", uri); err != nil {
		return ports.SourceSpec{}, err
	}
	uri = strings.TrimSpace(uri)

	switch {
	case uri == "-":
		return ports.SourceSpec{Kind: ports.SourceStdin, Path: "-"}, nil

	case strings.HasPrefix(uri, "sqlite://"):
		u, err := url.Parse(uri)
		if err != nil {
			return ports.SourceSpec{}, fmt.Errorf("%w: %v", application.ErrInvalidSource, err)
		}
		path := u.Host + u.Path
		if path == "" {
			return ports.SourceSpec{}, fmt.Errorf("%w: missing database path in %s", application.ErrInvalidSource, uri)
		}
		table := u.Query().Get("table")
		if table == "" {
			table = config.DefaultTable
		}
		if err := application.ValidateIdentifier("table", table); err != nil {
			return ports.SourceSpec{}, err
		}
		return ports.SourceSpec{Kind: ports.SourceSQLite, Path: path, Table: table}, nil

	case strings.HasPrefix(uri, "s3://"):
		bucket, key, _ := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
		if err := application.ValidateRequired("bucket", bucket); err != nil {
			return ports.SourceSpec{}, err
		}
		if err := application.ValidateRequired("key", key); err != nil {
			return ports.SourceSpec{}, err
		}
		return ports.SourceSpec{Kind: ports.SourceS3, Bucket: bucket, Key: key}, nil

	case strings.Contains(uri, "://"):
		scheme, _, _ := strings.Cut(uri, "://")
		return ports.SourceSpec{}, fmt.Errorf("%w: unknown scheme %s", application.ErrInvalidSource, scheme)

	default:
		return ports.SourceSpec{Kind: ports.SourceFile, Path: uri}, nil
	}
}

// OpenSourceResult contains the opened source
type OpenSourceResult struct {
	Source ports.DocumentSource
	Spec   ports.SourceSpec
}

// Close releases the source if it holds resources
func (r *OpenSourceResult) Close() error {
	if c, ok := r.Source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenSourceCommand resolves a source URI into a DocumentSource
type OpenSourceCommand struct {
	opener ports.SourceOpener
	URI    string
}

// NewOpenSourceCommand creates a new OpenSourceCommand
func NewOpenSourceCommand(opener ports.SourceOpener, uri string) *OpenSourceCommand {
	return &OpenSourceCommand{
		opener: opener,
		URI:    uri,
	}
}

// Validate checks that the URI is well formed
func (c *OpenSourceCommand) Validate() error {
	_, err := ParseSourceURI(c.URI)
	return err
}

// Execute runs the open source command
func (c *OpenSourceCommand) Execute(ctx context.Context) (*OpenSourceResult, error) {
	spec, err := ParseSourceURI(c.URI)
	if err != nil {
		return nil, err
	}

	src, err := c.opener.Open(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}

	logger.Debug("opened source", "kind", spec.Kind.String(), "source", src.Describe())
	return &OpenSourceResult{Source: src, Spec: spec}, nil
}
