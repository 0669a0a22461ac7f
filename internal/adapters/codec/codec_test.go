package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"vartree/internal/application"
	"vartree/internal/domain"
)

const installerJSON = `{
	"hostname": "calamares",
	"branding": {"productName": "Generic", "version": "2019.1"},
	"partitions": [
		{"device": "/dev/sda1", "fs": "ext4"},
		{"device": "/dev/sda2", "fs": "swap"}
	]
}`

const installerYAML = `
hostname: calamares
branding:
  productName: Generic
  version: "2019.1"
partitions:
  - device: /dev/sda1
    fs: ext4
  - device: /dev/sda2
    fs: swap
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		comp   Compression
	}{
		{"state.json", FormatJSON, CompressionNone},
		{"STATE.JSON", FormatJSON, CompressionNone},
		{"events.jsonl", FormatJSONL, CompressionNone},
		{"events.ndjson.zst", FormatJSONL, CompressionZstd},
		{"settings.yml", FormatYAML, CompressionNone},
		{"settings.yaml.gz", FormatYAML, CompressionGzip},
		{"dump.gz", FormatAuto, CompressionGzip},
		{"-", FormatAuto, CompressionNone},
		{"", FormatAuto, CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, comp := DetectFormat(tt.name)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.comp, comp)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, application.ErrUnsupportedFormat)
}

func TestDecode_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Decode([]byte(installerJSON), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := Decode([]byte(installerYAML), FormatYAML)
	require.NoError(t, err)

	assert.True(t, fromJSON.Equal(fromYAML))
	assert.Equal(t, 12, fromJSON.Count())
	assert.Equal(t, []string{"branding", "hostname", "partitions"}, fromJSON.Keys())
}

func TestDecode_JSONNumbers(t *testing.T) {
	v, err := Decode([]byte(`{"i": 42, "f": 1.5, "big": 1e300, "neg": -7}`), FormatJSON)
	require.NoError(t, err)

	get := func(k string) any {
		x, ok := v.Get(k)
		require.True(t, ok, k)
		return x.Interface()
	}
	assert.Equal(t, int64(42), get("i"))
	assert.Equal(t, 1.5, get("f"))
	assert.Equal(t, 1e300, get("big"))
	assert.Equal(t, int64(-7), get("neg"))
}

func TestDecode_JSONScalarsAndNull(t *testing.T) {
	v, err := Decode([]byte(`[true, null, "s", []]`), FormatJSON)
	require.NoError(t, err)
	require.True(t, v.IsList())
	assert.Equal(t, true, v.At(0).Interface())
	assert.True(t, v.At(1).IsNull())
	assert.Equal(t, "s", v.At(2).Interface())
	assert.True(t, v.At(3).IsList())
}

func TestDecode_JSONErrors(t *testing.T) {
	tests := []string{
		`{"a": }`,
		`{"a": 1} trailing`,
		`[1, 2`,
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := Decode([]byte(in), FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestDecode_JSONL(t *testing.T) {
	in := "{\"n\": 1}\n\n{\"n\": 2}\n"
	v, err := Decode([]byte(in), FormatJSONL)
	require.NoError(t, err)
	require.True(t, v.IsList())
	assert.Equal(t, 2, v.Len())

	_, err = Decode([]byte("{\"n\": 1}\n{oops\n"), FormatJSONL)
	assert.ErrorContains(t, err, "line 2")
}

func TestDecode_YAMLFeatures(t *testing.T) {
	t.Run("merge keys", func(t *testing.T) {
		in := `
base: &base
  a: 1
  b: 2
child:
  <<: *base
  b: 3
`
		v, err := Decode([]byte(in), FormatYAML)
		require.NoError(t, err)
		child, ok := v.Get("child")
		require.True(t, ok)
		a, _ := child.Get("a")
		b, _ := child.Get("b")
		assert.Equal(t, int64(1), a.Interface())
		assert.Equal(t, int64(3), b.Interface())
	})

	t.Run("multiple documents", func(t *testing.T) {
		v, err := Decode([]byte("a: 1\n---\nb: 2\n"), FormatYAML)
		require.NoError(t, err)
		require.True(t, v.IsList())
		assert.Equal(t, 2, v.Len())
	})

	t.Run("typed scalars", func(t *testing.T) {
		v, err := Decode([]byte("n: 3\nf: 0.25\nok: true\nnone: ~\n"), FormatYAML)
		require.NoError(t, err)
		want := domain.Map(
			domain.Entry{Key: "n", Value: domain.Scalar(3)},
			domain.Entry{Key: "f", Value: domain.Scalar(0.25)},
			domain.Entry{Key: "ok", Value: domain.Scalar(true)},
			domain.Entry{Key: "none", Value: domain.Scalar(nil)},
		)
		assert.True(t, want.Equal(v))
	})
}

func TestDecode_Sniffing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind domain.Kind
		len  int
	}{
		{"json object", installerJSON, domain.KindMap, 3},
		{"json lines", "{\"a\": 1}\n{\"a\": 2}\n{\"a\": 3}", domain.KindList, 3},
		{"yaml", installerYAML, domain.KindMap, 3},
		{"yaml list", "- a\n- b\n", domain.KindList, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.in), FormatAuto)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.len, v.Len())
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "\xef\xbb\xbf"} {
		v, err := Decode([]byte(in), FormatAuto)
		require.NoError(t, err)
		assert.False(t, v.IsValid())
	}
}

func TestRead_Compressed(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(installerJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll([]byte(installerYAML), nil)
	require.NoError(t, enc.Close())

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"gzip by name", "state.json.gz", gz.Bytes()},
		{"gzip by magic", "", gz.Bytes()},
		{"zstd by name", "state.yaml.zst", zst},
		{"zstd by magic", "blob", zst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Read(bytes.NewReader(tt.data), tt.file, Options{})
			require.NoError(t, err)
			assert.Equal(t, 12, v.Count())
		})
	}
}

func TestRead_Charset(t *testing.T) {
	latin, err := charmap.Windows1252.NewEncoder().String(`{"name": "Müller"}`)
	require.NoError(t, err)

	v, err := Read(strings.NewReader(latin), "x.json", Options{Charset: "windows-1252"})
	require.NoError(t, err)
	name, _ := v.Get("name")
	assert.Equal(t, "Müller", name.Interface())

	_, err = Read(strings.NewReader(latin), "x.json", Options{Charset: "klingon"})
	assert.ErrorIs(t, err, application.ErrUnsupportedFormat)
}

func TestRead_FormatOverride(t *testing.T) {
	v, err := Read(strings.NewReader("a: 1\n"), "weird.json", Options{Format: FormatYAML})
	require.NoError(t, err)
	assert.True(t, v.IsMap())
}

func TestEncodeJSON(t *testing.T) {
	v, err := Decode([]byte(installerJSON), FormatJSON)
	require.NoError(t, err)

	out, err := EncodeJSON(v)
	require.NoError(t, err)

	back, err := Decode(out, FormatJSON)
	require.NoError(t, err)
	assert.True(t, v.Equal(back))

	null, err := EncodeJSON(domain.Invalid())
	require.NoError(t, err)
	assert.Equal(t, "null", string(null))
}
