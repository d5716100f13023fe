// Package config loads handler settings from flags, with environment
// overrides applied through envy.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/jamiealquiza/envy"
	"github.com/sirupsen/logrus"
)

// Role selects which handler the configuration is for.
type Role int

const (
	Uploader Role = iota
	Pipeline
)

const (
	DefaultUploadBucket   = "demo-bucket"
	DefaultPipelineBucket = "demo-pipeline-bucket"
	DefaultKey            = "test.txt"
	DefaultBody           = "Uploaded via Lambda from LocalStack!"
	defaultRegion         = "us-east-1"
)

// EnvPrefix returns the envy prefix for a role, e.g. UPLOADER_BUCKET.
func (r Role) EnvPrefix() string {
	if r == Pipeline {
		return "PIPELINE"
	}
	return "UPLOADER"
}

func (r Role) String() string {
	if r == Pipeline {
		return "pipeline"
	}
	return "uploader"
}

type Config struct {
	Role Role

	Bucket     string
	DefaultKey string
	Body       string
	Decompress bool

	Region    string
	Endpoint  string
	PathStyle bool
	LogLevel  string
}

// Register defines the flags for role on fs and returns the Config they
// populate once fs is parsed.
func Register(fs *flag.FlagSet, role Role) *Config {
	c := &Config{Role: role}

	bucket := DefaultUploadBucket
	if role == Pipeline {
		bucket = DefaultPipelineBucket
	}
	fs.StringVar(&c.Bucket, "bucket", bucket, "Name of the S3 bucket objects are written to")

	switch role {
	case Uploader:
		fs.StringVar(&c.DefaultKey, "defaultkey", DefaultKey, "Object key used when the event has no file_name")
		fs.StringVar(&c.Body, "body", DefaultBody, "Body written to the uploaded object")
	case Pipeline:
		fs.BoolVar(&c.Decompress, "decompress", false, "Decompress record payloads that are a recognised compressed stream")
	}

	fs.StringVar(&c.Region, "region", envOr("AWS_REGION", defaultRegion), "AWS region of the S3 bucket")
	fs.StringVar(&c.Endpoint, "endpoint", os.Getenv("AWS_ENDPOINT_URL"), "Custom S3 endpoint, e.g. http://localhost:4566")
	fs.BoolVar(&c.PathStyle, "pathstyle", false, "Use path-style S3 addressing")
	fs.StringVar(&c.LogLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	return c
}

// Load registers the flags for role on the process flag set, applies
// environment overrides and parses the command line.
func Load(role Role) (*Config, error) {
	c := Register(flag.CommandLine, role)
	envy.Parse(role.EnvPrefix())
	flag.Parse()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Bucket == "" {
		result = multierror.Append(result, errors.New("bucket is empty"))
	}
	if c.Role == Uploader && c.DefaultKey == "" {
		result = multierror.Append(result, errors.New("defaultkey is empty"))
	}
	if c.Region == "" {
		result = multierror.Append(result, errors.New("region is empty"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("loglevel: %w", err))
	}

	return result.ErrorOrNil()
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
