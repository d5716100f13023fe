package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/awserr"
)

// Error is a failed S3 operation with the object it targeted.
type Error struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("s3.%s s3://%s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the AWS error code of the cause, or "" when the cause did
// not come from the service.
func (e *Error) Code() string {
	var aerr awserr.Error
	if errors.As(e.Err, &aerr) {
		return aerr.Code()
	}
	return ""
}

func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}
