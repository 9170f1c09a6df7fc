package valueparser

import "errors"

var (
	ErrUnparsableValue = errors.New("unparsable value")
	ErrUnsupportedType = errors.New("unsupported type")
)
