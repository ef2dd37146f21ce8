package sbc

import (
	"errors"
	"fmt"
)

// Error represents an SBC decoder error code.
type Error int

// Error codes returned by the decoder.
const (
	ErrNone             Error = 0
	ErrSourceUnderflow  Error = 1
	ErrConfigMismatch   Error = 2
	ErrChecksumMismatch Error = 3
	ErrNoMoreBlocks     Error = 4
	ErrUnrecognizedSync Error = 5
	ErrInvalidConfig    Error = 6
	ErrBufferTooSmall   Error = 7
)

var errMessages = [8]string{
	"No error",
	"Byte source ran out of data",
	"Channel or sub-band count does not match the filter state",
	"Frame checksum mismatch",
	"No more blocks in frame",
	"Unrecognized sync word",
	"Unsupported channel and sub-band combination",
	"Output buffer too small for frame",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return errMessages[e]
	}
	return "unknown error"
}

// underflow wraps a byte source failure so that callers can match it with
// errors.Is(err, ErrSourceUnderflow) while keeping the cause.
func underflow(err error) error {
	if err == nil || errors.Is(err, ErrSourceUnderflow) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSourceUnderflow, err)
}
