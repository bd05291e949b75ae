package qvalue

import "errors"

// Input validation errors. All of them are returned before any
// computation starts; wrap-checks should use errors.Is.
var (
	ErrShape          = errors.New("qvalue: input must be one-dimensional")
	ErrLengthMismatch = errors.New("qvalue: scores and labels must be the same length")
	ErrLabel          = errors.New("qvalue: label not coercible to the expected domain")
	ErrNaNScore       = errors.New("qvalue: score is NaN")
	ErrConfig         = errors.New("qvalue: invalid parameter")
)
