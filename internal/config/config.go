package config

import (
	"os"
	"strconv"
)

const (
	DefaultSource   = "-"
	DefaultLanguage = "en"
	DefaultTable    = "globalstorage"
	DefaultRegion   = "us-east-1"
)

// Config holds settings read from the environment. Command-line flags
// override individual fields.
type Config struct {
	Source   string // document URI: file path, "-", sqlite://..., s3://...
	Language string // header language (BCP 47)
	Charset  string // legacy input charset, empty for UTF-8
	Log      bool   // enable file logging
	LogDir   string // log directory, empty for the default
	Debug    bool   // log at debug level

	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3AccessKey string // static credentials, for MinIO and friends
	S3SecretKey string
}

// Load reads the VARTREE_* environment variables, falling back to defaults
func Load() Config {
	return Config{
		Source:      getenv("VARTREE_SOURCE", DefaultSource),
		Language:    getenv("VARTREE_LANG", DefaultLanguage),
		Charset:     os.Getenv("VARTREE_CHARSET"),
		Log:         getbool("VARTREE_LOG"),
		LogDir:      os.Getenv("VARTREE_LOG_DIR"),
		Debug:       getbool("VARTREE_DEBUG"),
		S3Region:    getenv("VARTREE_S3_REGION", getenv("AWS_REGION", DefaultRegion)),
		S3Endpoint:  os.Getenv("VARTREE_S3_ENDPOINT"),
		S3PathStyle: getbool("VARTREE_S3_PATH_STYLE"),
		S3AccessKey: os.Getenv("VARTREE_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("VARTREE_S3_SECRET_KEY"),
	}
}

func getenv(name, fallback string) string {
	if env := os.Getenv(name); env != "" {
		return env
	}
	return fallback
}

func getbool(name string) bool {
	b, _ := strconv.ParseBool(os.Getenv(name))
	return b
}
