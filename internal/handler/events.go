package handler

// UploadEvent is the ad-hoc invocation payload of the upload handler.
type UploadEvent struct {
	FileName *string `json:"file_name,omitempty"`
}

// BatchEvent is a Kinesis stream batch. Records is nil when the field is
// missing from the event, and empty for a zero-record batch.
//
// The record data is kept as the base64 text it arrives as, so a bad
// payload surfaces as a decode fault from the handler rather than an
// unmarshal failure in the runtime.
type BatchEvent struct {
	Records []Record `json:"Records"`
}

type Record struct {
	EventID        *string        `json:"eventID"`
	EventName      string         `json:"eventName,omitempty"`
	EventSource    string         `json:"eventSource,omitempty"`
	EventSourceARN string         `json:"eventSourceARN,omitempty"`
	AWSRegion      string         `json:"awsRegion,omitempty"`
	Kinesis        *KinesisRecord `json:"kinesis"`
}

// ID returns the record's eventID, or "" when the event has none.
func (r Record) ID() string {
	if r.EventID == nil {
		return ""
	}
	return *r.EventID
}

type KinesisRecord struct {
	Data           *string `json:"data"`
	PartitionKey   string  `json:"partitionKey,omitempty"`
	SequenceNumber string  `json:"sequenceNumber,omitempty"`
}

// Response is what both handlers return on success.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
