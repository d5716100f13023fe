// Command uploader is the Lambda function that writes a fixed object to
// S3 for each invocation.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"s3-forwarder/internal/config"
	"s3-forwarder/internal/handler"
	"s3-forwarder/internal/logging"
	"s3-forwarder/internal/storage"
)

func main() {
	cfg, err := config.Load(config.Uploader)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logger setup failed")
	}

	sess, err := storage.NewSession(storage.SessionOptions{
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
	})
	if err != nil {
		logger.WithError(err).Fatal("aws session setup failed")
	}

	h := handler.NewUploader(storage.NewS3Writer(sess), cfg, logger)
	logger.WithFields(logrus.Fields{"bucket": cfg.Bucket, "default_key": cfg.DefaultKey}).Debug("uploader ready")
	lambda.Start(h.Handle)
}
