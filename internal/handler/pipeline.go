package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"s3-forwarder/internal/config"
	"s3-forwarder/internal/logging"
	"s3-forwarder/internal/payload"
	"s3-forwarder/internal/storage"
)

const processedBody = `"Processed successfully"`

// Pipeline writes every record of a stream batch as its own object, in
// batch order. The first failing record aborts the batch.
type Pipeline struct {
	Writer  storage.Writer
	Bucket  string
	Decoder payload.Decoder
	Logger  logrus.FieldLogger
}

func NewPipeline(w storage.Writer, cfg *config.Config, logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Writer:  w,
		Bucket:  cfg.Bucket,
		Decoder: payload.Decoder{Decompress: cfg.Decompress},
		Logger:  logger,
	}
}

// RecordKey is the object key a record is stored under.
func RecordKey(eventID string) string {
	return fmt.Sprintf("record-%s.txt", eventID)
}

func (p *Pipeline) Handle(ctx context.Context, event BatchEvent) (Response, error) {
	log := logging.WithContext(ctx, p.Logger).WithField("bucket", p.Bucket)

	if event.Records == nil {
		return Response{}, p.fault(log, decodeError("", ErrMissingRecords))
	}

	for _, record := range event.Records {
		id := record.ID()
		text, err := p.decode(record)
		if err != nil {
			return Response{}, p.fault(log, decodeError(id, err))
		}

		key := RecordKey(id)
		if err := p.Writer.Write(ctx, p.Bucket, key, strings.NewReader(text)); err != nil {
			return Response{}, p.fault(log, storageWriteError(id, err))
		}
		log.WithFields(logrus.Fields{
			"key":             key,
			"partition_key":   record.Kinesis.PartitionKey,
			"sequence_number": record.Kinesis.SequenceNumber,
		}).Debug("record written")
	}

	log.WithField("records", len(event.Records)).Info("batch processed")
	return Response{StatusCode: http.StatusOK, Body: processedBody}, nil
}

func (p *Pipeline) decode(record Record) (string, error) {
	if record.Kinesis == nil || record.Kinesis.Data == nil {
		return "", ErrMissingData
	}
	text, err := p.Decoder.Decode(*record.Kinesis.Data)
	if err != nil {
		return "", err
	}
	// an empty eventID is valid and yields record-.txt
	if record.EventID == nil {
		return "", ErrMissingEventID
	}
	return text, nil
}

func (p *Pipeline) fault(log *logrus.Entry, herr *Error) error {
	log.WithError(herr.Err).WithFields(logrus.Fields{
		"kind":     herr.Kind.String(),
		"event_id": herr.EventID,
	}).Error("batch aborted")
	return herr
}
