package core

import "errors"

var (
	// ErrSampleConstant is returned when a sampling statement targets a literal.
	// There is no way to bind a draw to a constant so the whole pass is aborted.
	ErrSampleConstant = errors.New("sampling constants not supported")

	ErrUnsupportedStatement = errors.New("unsupported statement type")
	ErrMalformedTruncation  = errors.New("malformed truncation")
	ErrUnknownDistribution  = errors.New("unknown distribution family")
)
