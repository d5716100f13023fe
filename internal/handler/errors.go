package handler

import (
	"errors"
	"fmt"
)

// Kind classifies a handler fault.
type Kind int

const (
	KindDecode Kind = iota + 1
	KindStorageWrite
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "DecodeError"
	case KindStorageWrite:
		return "StorageWriteError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrMissingRecords = errors.New("event has no Records")
	ErrMissingData    = errors.New("record has no kinesis.data")
	ErrMissingEventID = errors.New("record has no eventID")
)

// Error is returned by a handler in place of a response. The caller
// decides whether to retry.
type Error struct {
	Kind Kind
	// EventID is the record being processed, empty for upload faults
	EventID string
	Err     error
}

func (e *Error) Error() string {
	if e.EventID != "" {
		return fmt.Sprintf("%s: record %s: %v", e.Kind, e.EventID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the fault kind of err, if it is a handler fault.
func KindOf(err error) (Kind, bool) {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind, true
	}
	return 0, false
}

func decodeError(eventID string, err error) *Error {
	return &Error{Kind: KindDecode, EventID: eventID, Err: err}
}

func storageWriteError(eventID string, err error) *Error {
	return &Error{Kind: KindStorageWrite, EventID: eventID, Err: err}
}
