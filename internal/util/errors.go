package util

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamStatus      = errors.New("upstream returned error status")
	ErrInvalidPreferences  = errors.New("invalid preferences")
	ErrBatchTooLarge       = errors.New("question batch too large")
	ErrReportNotFound      = errors.New("validation report not found")
	ErrMissingStudent      = errors.New("student id missing from token")
	ErrStorageUnavailable  = errors.New("report storage unavailable")
)
