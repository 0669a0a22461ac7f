package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateJSON = `{
	"hostname": "calamares",
	"branding": {"productName": "Generic Linux", "version": "2019.1"},
	"partitions": [
		{"device": "/dev/sda1", "fs": "ext4"},
		{"device": "/dev/sda2", "fs": "swap"}
	]
}`

func writeState(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(stateJSON), 0644))
	return path
}

// run executes the CLI with args and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	path := writeState(t)

	out, err := run(t, "tree", "-s", path, "--depth", "1", "--header")
	require.NoError(t, err)
	assert.Equal(t, "Key: Value\nbranding: {2 keys}\nhostname: calamares\npartitions: [2 items]\n", out)

	out, err = run(t, "tree", "-s", path, ".partitions[1]", "--depth", "0", "--header=false")
	require.NoError(t, err)
	assert.Equal(t, "device: /dev/sda2\nfs: swap\n", out)
}

func TestTreeCommand_Language(t *testing.T) {
	path := writeState(t)

	out, err := run(t, "header", "-s", path, "--lang", "it")
	require.NoError(t, err)
	assert.Equal(t, "Chiave\nValore\n", out)

	_, err = run(t, "header", "-s", path, "--lang", "en")
	require.NoError(t, err)
}

func TestGetCommand(t *testing.T) {
	path := writeState(t)

	out, err := run(t, "get", "-s", path, ".branding.productName")
	require.NoError(t, err)
	assert.Equal(t, "Generic Linux\n", out)

	out, err = run(t, "get", "-s", path, "partitions.0")
	require.NoError(t, err)
	assert.JSONEq(t, `{"device": "/dev/sda1", "fs": "ext4"}`, out)

	_, err = run(t, "get", "-s", path, ".nope")
	assert.Error(t, err)
}

func TestRowsCommand(t *testing.T) {
	path := writeState(t)

	out, err := run(t, "rows", "-s", path, ".partitions")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0"))
	assert.Contains(t, lines[1], "{2 keys}")

	out, err = run(t, "rows", "-s", path, "--table")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	// header plus one line per node
	assert.Len(t, lines, 13)
	assert.Equal(t, []string{"0", "-1"}, strings.Fields(lines[1]))

	_, err = run(t, "rows", "-s", path, "--table=false")
	require.NoError(t, err)
}

func TestSearchCommand(t *testing.T) {
	path := writeState(t)

	out, err := run(t, "search", "-s", path, "sda2")
	require.NoError(t, err)
	assert.Equal(t, ".partitions.1.device = /dev/sda2\n", out)
}

func TestImportCommand(t *testing.T) {
	path := writeState(t)
	db := filepath.Join(t.TempDir(), "gs.db")

	out, err := run(t, "import", "-s", path, db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 keys")

	out, err = run(t, "get", "-s", "sqlite://"+db, ".branding.version")
	require.NoError(t, err)
	assert.Equal(t, "2019.1\n", out)
}

func TestUnknownSource(t *testing.T) {
	_, err := run(t, "tree", "-s", "ftp://example.com/state.json")
	assert.ErrorContains(t, err, "unknown scheme")

	_, err = run(t, "tree", "-s", "state.json", "--format", "toml")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "tree", "-s", "state.json", "--format", "auto")
	assert.Error(t, err)
}
