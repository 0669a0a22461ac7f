package ports

import (
	"context"

	"vartree/internal/domain"
)

// DocumentSource loads a document from somewhere: a file, stdin, a sqlite
// table or an object store.
type DocumentSource interface {
	// Load reads and decodes the whole document
	Load(ctx context.Context) (domain.Value, error)

	// Describe returns a short human-readable origin, e.g. the file path
	Describe() string
}

// LocalSource is a DocumentSource backed by a file the user can edit
type LocalSource interface {
	DocumentSource
	Path() string
}

// SourceKind tells which adapter serves a SourceSpec
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceStdin
	SourceSQLite
	SourceS3
)

func (k SourceKind) String() string {
	switch k {
	case SourceStdin:
		return "stdin"
	case SourceSQLite:
		return "sqlite"
	case SourceS3:
		return "s3"
	default:
		return "file"
	}
}

// SourceSpec is a parsed source URI
type SourceSpec struct {
	Kind   SourceKind
	Path   string // file or database path
	Table  string // sqlite table
	Bucket string // s3 bucket
	Key    string // s3 object key
}

// SourceOpener turns a SourceSpec into a DocumentSource. Sources that hold
// resources, such as a database handle, also implement io.Closer.
type SourceOpener interface {
	Open(ctx context.Context, spec SourceSpec) (DocumentSource, error)
}
