package config

import (
	"flag"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, role Role, args ...string) *Config {
	t.Helper()
	fs := flag.NewFlagSet(role.String(), flag.ContinueOnError)
	c := Register(fs, role)
	require.NoError(t, fs.Parse(args))
	return c
}

func TestRegister_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_ENDPOINT_URL", "")

	up := parse(t, Uploader)
	assert.Equal(t, "demo-bucket", up.Bucket)
	assert.Equal(t, "test.txt", up.DefaultKey)
	assert.Equal(t, "Uploaded via Lambda from LocalStack!", up.Body)
	assert.Equal(t, "us-east-1", up.Region)
	assert.Empty(t, up.Endpoint)
	assert.NoError(t, up.Validate())

	pl := parse(t, Pipeline)
	assert.Equal(t, "demo-pipeline-bucket", pl.Bucket)
	assert.False(t, pl.Decompress)
	assert.Empty(t, pl.DefaultKey)
	assert.NoError(t, pl.Validate())
}

func TestRegister_EnvironmentFallbacks(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT_URL", "http://localstack:4566")

	c := parse(t, Pipeline)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, "http://localstack:4566", c.Endpoint)
}

func TestRegister_Flags(t *testing.T) {
	c := parse(t, Pipeline, "-bucket", "stream-out", "-decompress", "-pathstyle", "-loglevel", "debug")
	assert.Equal(t, "stream-out", c.Bucket)
	assert.True(t, c.Decompress)
	assert.True(t, c.PathStyle)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestRegister_RoleSpecificFlags(t *testing.T) {
	fs := flag.NewFlagSet("uploader", flag.ContinueOnError)
	Register(fs, Uploader)
	assert.Nil(t, fs.Lookup("decompress"))
	assert.NotNil(t, fs.Lookup("defaultkey"))

	fs = flag.NewFlagSet("pipeline", flag.ContinueOnError)
	Register(fs, Pipeline)
	assert.Nil(t, fs.Lookup("defaultkey"))
	assert.NotNil(t, fs.Lookup("decompress"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErrs int
	}{
		{
			name: "valid uploader",
			cfg:  Config{Role: Uploader, Bucket: "b", DefaultKey: "k", Region: "us-east-1", LogLevel: "info"},
		},
		{
			name: "pipeline needs no default key",
			cfg:  Config{Role: Pipeline, Bucket: "b", Region: "us-east-1", LogLevel: "warn"},
		},
		{
			name:     "empty bucket",
			cfg:      Config{Role: Pipeline, Region: "us-east-1", LogLevel: "info"},
			wantErrs: 1,
		},
		{
			name:     "everything wrong",
			cfg:      Config{Role: Uploader, LogLevel: "loud"},
			wantErrs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErrs == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			merr, ok := err.(*multierror.Error)
			require.True(t, ok)
			assert.Len(t, merr.Errors, tt.wantErrs)
		})
	}
}

func TestRole(t *testing.T) {
	assert.Equal(t, "UPLOADER", Uploader.EnvPrefix())
	assert.Equal(t, "PIPELINE", Pipeline.EnvPrefix())
	assert.Equal(t, "pipeline", Pipeline.String())
}
