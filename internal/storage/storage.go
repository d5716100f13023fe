// Package storage writes objects to S3.
package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// Writer stores one object per call.
type Writer interface {
	Write(ctx context.Context, bucket, key string, body io.Reader) error
}

// SessionOptions controls how the AWS session is built.
type SessionOptions struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

// NewSession builds the session the uploader will use. An empty Endpoint
// leaves endpoint resolution to the SDK.
func NewSession(opts SessionOptions) (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(opts.Region),
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}
	if opts.PathStyle {
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return session.NewSession(cfg)
}

// S3Writer writes objects through an s3manager uploader.
type S3Writer struct {
	uploader s3manageriface.UploaderAPI
}

// NewS3Writer returns a writer backed by a new uploader for sess.
func NewS3Writer(sess *session.Session) *S3Writer {
	return NewS3WriterWithUploader(s3manager.NewUploader(sess))
}

func NewS3WriterWithUploader(uploader s3manageriface.UploaderAPI) *S3Writer {
	return &S3Writer{uploader: uploader}
}

// Write uploads body to s3://bucket/key. Failures are returned as *Error.
func (w *S3Writer) Write(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := w.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return NewObjectError("put", bucket, key, err)
	}
	return nil
}
