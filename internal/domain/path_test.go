package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "", want: Path{}},
		{in: ".", want: Path{}},
		{in: ".branding.productName", want: Path{"branding", "productName"}},
		{in: "branding.productName", want: Path{"branding", "productName"}},
		{in: ".partitions[1].fs", want: Path{"partitions", "1", "fs"}},
		{in: "partitions.1.fs", want: Path{"partitions", "1", "fs"}},
		{in: `["key with spaces"].x`, want: Path{"key with spaces", "x"}},
		{in: `["a.b"]`, want: Path{"a.b"}},
		{in: "  .hostname  ", want: Path{"hostname"}},
		{in: ".a.", wantErr: true},
		{in: ".a[", wantErr: true},
		{in: "[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPath_StringRoundTrip(t *testing.T) {
	paths := []Path{
		{},
		{"a"},
		{"partitions", "0", "device"},
		{"with space", "dot.ted"},
	}

	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			back, err := ParsePath(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, back)
		})
	}
}

func TestVariantModel_Locate(t *testing.T) {
	doc := installerState()
	m := NewVariantModel(&doc)

	t.Run("root", func(t *testing.T) {
		index, ok := m.Locate(Path{})
		assert.True(t, ok)
		assert.False(t, index.IsValid())
	})

	t.Run("map key", func(t *testing.T) {
		index, ok := m.Locate(Path{"branding", "version"})
		require.True(t, ok)
		assert.Equal(t, Scalar("2019.1"), m.Data(index.Sibling(1), RoleDisplay))
	})

	t.Run("list position", func(t *testing.T) {
		index, ok := m.Locate(Path{"partitions", "0", "device"})
		require.True(t, ok)
		assert.Equal(t, Scalar("/dev/sda1"), m.Data(index.Sibling(1), RoleDisplay))
		assert.Equal(t, []string{"partitions", "0", "device"}, m.Path(index))
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := m.Locate(Path{"branding", "nope"})
		assert.False(t, ok)
	})

	t.Run("bad list position", func(t *testing.T) {
		_, ok := m.Locate(Path{"partitions", "7"})
		assert.False(t, ok)
		_, ok = m.Locate(Path{"partitions", "first"})
		assert.False(t, ok)
	})

	t.Run("descend into scalar", func(t *testing.T) {
		_, ok := m.Locate(Path{"hostname", "x"})
		assert.False(t, ok)
	})
}
