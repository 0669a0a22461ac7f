package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vartree/internal/adapters/codec"
	"vartree/internal/adapters/filesystem"
	"vartree/internal/domain"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()

	src := filesystem.NewSource(writeState(t), codec.Options{})
	doc, err := src.Load(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	return newShell(domain.NewVariantModel(&doc), src, &out), &out
}

func TestShell_Navigation(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()

	assert.Equal(t, "/> ", sh.prompt())

	_, err := sh.exec(ctx, "cd partitions")
	require.NoError(t, err)
	_, err = sh.exec(ctx, "cd [0]")
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"partitions", "0"}, sh.cwd)
	assert.Equal(t, "/partitions.0> ", sh.prompt())

	out.Reset()
	_, err = sh.exec(ctx, "get fs")
	require.NoError(t, err)
	assert.Equal(t, "ext4\n", out.String())

	_, err = sh.exec(ctx, "cd ..")
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"partitions"}, sh.cwd)

	out.Reset()
	_, err = sh.exec(ctx, "pwd")
	require.NoError(t, err)
	assert.Equal(t, ".partitions\n", out.String())

	_, err = sh.exec(ctx, "cd /branding")
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"branding"}, sh.cwd)

	_, err = sh.exec(ctx, "cd /")
	require.NoError(t, err)
	assert.Empty(t, sh.cwd)
}

func TestShell_Errors(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()

	_, err := sh.exec(ctx, "cd hostname")
	assert.ErrorContains(t, err, "not a container")

	_, err = sh.exec(ctx, "cd nowhere")
	assert.ErrorContains(t, err, "not found")

	_, err = sh.exec(ctx, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	assert.Empty(t, sh.cwd)
}

func TestShell_ListTreeFind(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()

	_, err := sh.exec(ctx, "ls")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hostname")
	assert.Contains(t, out.String(), "calamares")

	out.Reset()
	_, err = sh.exec(ctx, "tree branding")
	require.NoError(t, err)
	assert.Equal(t, "productName: Generic Linux\nversion: 2019.1\n", out.String())

	out.Reset()
	_, err = sh.exec(ctx, "find ext4")
	require.NoError(t, err)
	assert.Equal(t, ".partitions.0.fs  ext4\n", out.String())
}

func TestShell_ReloadAndQuit(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()

	_, err := sh.exec(ctx, "cd partitions")
	require.NoError(t, err)

	_, err = sh.exec(ctx, "reload")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Reloaded")
	assert.Equal(t, domain.Path{"partitions"}, sh.cwd)

	quit, err := sh.exec(ctx, "exit")
	require.NoError(t, err)
	assert.True(t, quit)

	quit, _ = sh.exec(ctx, "   ")
	assert.False(t, quit)
}
