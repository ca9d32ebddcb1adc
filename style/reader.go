package style

import "encoding/binary"

// reader is a bounds-checked cursor over an in-memory buffer. Every read
// either advances the cursor past what it returned or fails with
// ErrTruncated; there are no partial reads.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) done() bool { return r.pos >= len(r.data) }

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) uint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrTruncated
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) int8() (int8, error) {
	v, err := r.uint8()
	return int8(v), err
}

func (r *reader) uint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// bytes returns a copy of the next n bytes.
func (r *reader) bytes(n int) ([]byte, error) {
	v, err := r.peek(n)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, v)
	r.pos += n
	return b, nil
}

// peek borrows a read-only view of the next n bytes without advancing.
func (r *reader) peek(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrTruncated
	}
	return r.data[r.pos : r.pos+n], nil
}

func (r *reader) skip(n int) error {
	if n < 0 || r.remaining() < n {
		return ErrTruncated
	}
	r.pos += n
	return nil
}

// sub returns a cursor bounded to the next n bytes and advances past them.
func (r *reader) sub(n int) (*reader, error) {
	v, err := r.peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return &reader{data: v}, nil
}
