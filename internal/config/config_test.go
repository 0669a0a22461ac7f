package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, name := range []string{
		"VARTREE_SOURCE", "VARTREE_LANG", "VARTREE_CHARSET", "VARTREE_LOG",
		"VARTREE_LOG_DIR", "VARTREE_DEBUG", "VARTREE_S3_REGION", "AWS_REGION",
		"VARTREE_S3_ENDPOINT", "VARTREE_S3_PATH_STYLE", "VARTREE_S3_ACCESS_KEY",
		"VARTREE_S3_SECRET_KEY",
	} {
		t.Setenv(name, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultRegion, cfg.S3Region)
	assert.False(t, cfg.Log)
	assert.False(t, cfg.S3PathStyle)
	assert.Empty(t, cfg.S3AccessKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("VARTREE_SOURCE", "sqlite:///tmp/gs.db")
	t.Setenv("VARTREE_LANG", "de")
	t.Setenv("VARTREE_CHARSET", "windows-1252")
	t.Setenv("VARTREE_LOG", "true")
	t.Setenv("VARTREE_S3_REGION", "")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("VARTREE_S3_PATH_STYLE", "1")
	t.Setenv("VARTREE_S3_ACCESS_KEY", "minioadmin")

	cfg := Load()
	assert.Equal(t, "sqlite:///tmp/gs.db", cfg.Source)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, "windows-1252", cfg.Charset)
	assert.True(t, cfg.Log)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.True(t, cfg.S3PathStyle)
	assert.Equal(t, "minioadmin", cfg.S3AccessKey)
}
