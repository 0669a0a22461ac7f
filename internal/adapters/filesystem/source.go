package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vartree/internal/adapters/codec"
	"vartree/internal/application"
	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// Stdin is the path that makes a Source read standard input
const Stdin = "-"

// Source implements ports.DocumentSource for a file or standard input
type Source struct {
	path  string
	opts  codec.Options
	stdin io.Reader
}

var _ ports.LocalSource = (*Source)(nil)

// NewSource creates a source reading path, which may start with ~
func NewSource(path string, opts codec.Options) *Source {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Source{path: path, opts: opts, stdin: os.Stdin}
}

// NewReaderSource creates a source that decodes r once, as if it were stdin
func NewReaderSource(r io.Reader, opts codec.Options) *Source {
	return &Source{path: Stdin, opts: opts, stdin: r}
}

// Path returns the file path, or "-" for standard input
func (s *Source) Path() string {
	return s.path
}

// Describe implements ports.DocumentSource
func (s *Source) Describe() string {
	if s.path == Stdin {
		return "<stdin>"
	}
	return s.path
}

// Load reads and decodes the whole document
func (s *Source) Load(ctx context.Context) (domain.Value, error) {
	if err := ctx.Err(); err != nil {
		return domain.Value{}, err
	}

	if s.path == Stdin {
		logger.Debug("reading document", "source", "stdin")
		v, err := codec.Read(s.stdin, "", s.opts)
		if err != nil {
			return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "decode", Err: err}
		}
		return v, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return domain.Value{}, &application.SourceError{Source: s.path, Op: "open", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.Value{}, &application.SourceError{Source: s.path, Op: "read", Err: err}
	}
	if info.IsDir() {
		return domain.Value{}, &application.SourceError{Source: s.path, Op: "read", Err: errIsDirectory}
	}

	logger.Debug("reading document", "source", s.path, "size", info.Size())
	v, err := codec.Read(f, filepath.Base(s.path), s.opts)
	if err != nil {
		return domain.Value{}, &application.SourceError{Source: s.path, Op: "decode", Err: err}
	}
	return v, nil
}
