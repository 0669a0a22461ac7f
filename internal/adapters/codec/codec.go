// Package codec decodes documents from raw bytes into domain values.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"vartree/internal/application"
	"vartree/internal/domain"
)

// Format is a document serialization
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatJSONL
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat parses a format name as given on the command line
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %s", application.ErrUnsupportedFormat, s)
	}
}

// Options controls how a document is read
type Options struct {
	Format  Format // FormatAuto detects from the name, then the content
	Charset string // legacy input charset; empty means UTF-8
}

// DetectFormat guesses the format and compression from a file or object name
func DetectFormat(name string) (Format, Compression) {
	name = strings.ToLower(name)
	comp := CompressionNone
	switch path.Ext(name) {
	case ".gz":
		comp = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case ".zst":
		comp = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}

	switch path.Ext(name) {
	case ".json":
		return FormatJSON, comp
	case ".jsonl", ".ndjson":
		return FormatJSONL, comp
	case ".yaml", ".yml":
		return FormatYAML, comp
	default:
		return FormatAuto, comp
	}
}

// Read decompresses, transcodes and decodes a document. The name is only
// used for format detection and may be empty.
func Read(r io.Reader, name string, opts Options) (domain.Value, error) {
	format, comp := DetectFormat(name)
	if opts.Format != FormatAuto {
		format = opts.Format
	}

	br := bufio.NewReader(r)
	if comp == CompressionNone {
		comp = sniffCompression(br)
	}

	rc, err := Decompress(br, comp)
	if err != nil {
		return domain.Value{}, err
	}
	defer rc.Close()

	var src io.Reader = rc
	if opts.Charset != "" {
		src, err = transcode(src, opts.Charset)
		if err != nil {
			return domain.Value{}, err
		}
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.Value{}, err
	}
	return Decode(data, format)
}

// Decode parses data in the given format. Empty input yields the invalid
// (empty) value.
func Decode(data []byte, format Format) (domain.Value, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Value{}, nil
	}

	if format == FormatAuto {
		format = sniffFormat(data)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatJSONL:
		return decodeJSONL(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return domain.Value{}, fmt.Errorf("%w: %s", application.ErrUnsupportedFormat, format)
	}
}

// sniffFormat picks JSON for documents starting with { or [, JSONL when
// several JSON values follow each other line by line, and YAML otherwise.
func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch trimmed[0] {
	case '{', '[':
		if _, err := decodeJSON(trimmed); err == nil {
			return FormatJSON
		}
		if bytes.Contains(trimmed, []byte("\n")) {
			if _, err := decodeJSONL(trimmed); err == nil {
				return FormatJSONL
			}
		}
		return FormatJSON
	default:
		return FormatYAML
	}
}

var charsets = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"latin9":       charmap.ISO8859_15,
}

func transcode(r io.Reader, charset string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "utf-8" || name == "utf8" {
		return r, nil
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("%w: charset %s", application.ErrUnsupportedFormat, charset)
	}
	return enc.NewDecoder().Reader(r), nil
}
