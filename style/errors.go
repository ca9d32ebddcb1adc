package style

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader means the buffer does not start with a GBST
	// version 1 header.
	ErrMalformedHeader = errors.New("style: not a GBST version 1 file")
	// ErrTruncated means a declared or implicit length exceeds the
	// remaining buffer.
	ErrTruncated = errors.New("style: truncated data")
	// ErrSizeMismatch means a chunk's declared length does not match the
	// size its records require.
	ErrSizeMismatch = errors.New("style: chunk size mismatch")
	// ErrUnsupportedChunk means the file contains a recognized chunk this
	// decoder deliberately does not handle.
	ErrUnsupportedChunk = errors.New("style: unsupported chunk")
	// ErrInvalidIndex means a virtual or physical palette index, or an
	// asset index, is out of range.
	ErrInvalidIndex = errors.New("style: index out of range")
)

// DecodeError records where in the file a decode failed. Chunk is the
// four-character tag of the chunk being decoded, or empty if the failure
// happened outside any chunk payload. Offset is the position of the chunk
// header within the original buffer.
type DecodeError struct {
	Chunk  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Chunk == "" {
		return fmt.Sprintf("style: offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("style: chunk %s at offset %d: %v", e.Chunk, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
