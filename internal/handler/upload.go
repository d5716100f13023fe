package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"s3-forwarder/internal/config"
	"s3-forwarder/internal/logging"
	"s3-forwarder/internal/storage"
)

// Uploader writes one fixed-body object per invocation.
type Uploader struct {
	Writer     storage.Writer
	Bucket     string
	DefaultKey string
	Body       string
	Logger     logrus.FieldLogger
}

func NewUploader(w storage.Writer, cfg *config.Config, logger logrus.FieldLogger) *Uploader {
	return &Uploader{
		Writer:     w,
		Bucket:     cfg.Bucket,
		DefaultKey: cfg.DefaultKey,
		Body:       cfg.Body,
		Logger:     logger,
	}
}

// Handle writes the object named by event.FileName, or DefaultKey when the
// event does not name one.
func (u *Uploader) Handle(ctx context.Context, event UploadEvent) (Response, error) {
	log := logging.WithContext(ctx, u.Logger)

	key := u.DefaultKey
	if event.FileName != nil {
		key = *event.FileName
	}
	log = log.WithFields(logrus.Fields{"bucket": u.Bucket, "key": key})

	if err := u.Writer.Write(ctx, u.Bucket, key, strings.NewReader(u.Body)); err != nil {
		herr := storageWriteError("", err)
		log.WithError(err).WithField("kind", herr.Kind.String()).Error("upload failed")
		return Response{}, herr
	}
	log.Info("uploaded")

	return Response{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"uploaded": %s}`, jsonString(key)),
	}, nil
}

// jsonString quotes s as a JSON string without HTML escaping and with
// non-ASCII characters written as \u escapes (UTF-16 surrogate pairs
// outside the BMP).
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	quoted := strings.TrimSuffix(buf.String(), "\n")

	var out strings.Builder
	for _, r := range quoted {
		switch {
		case r < utf8.RuneSelf:
			out.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&out, `\u%04x`, r)
		}
	}
	return out.String()
}
