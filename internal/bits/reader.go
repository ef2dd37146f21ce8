// Package bits implements MSB-first bit reading over a byte source.
package bits

import "errors"

// ErrBitCount is returned when a read asks for more bits than the entry point allows.
var ErrBitCount = errors.New("bits: bit count out of range")

// Source supplies whole bytes to a Reader.
//
// ReadFull must fill p completely or return an error.
type Source interface {
	ReadFull(p []byte) error
}

// Reader reads bit fields from a Source, most significant bit first.
//
// It buffers at most one byte of look-ahead: cur holds the last byte fetched
// from the source and left is the number of its low bits not yet consumed.
// A new byte is fetched only when a read needs more than left bits, so the
// reader never pulls bytes beyond the last field it returns.
type Reader struct {
	src  Source
	cur  uint8 // Last byte fetched
	left uint  // Unread low bits of cur (0-7 between reads)
	n    int   // Bytes fetched from src
	pair [2]byte
}

// NewReader creates a Reader over src with an empty look-ahead buffer.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Reset rebinds the reader to src and drops any buffered bits.
func (r *Reader) Reset(src Source) {
	*r = Reader{src: src}
}

// BitsLeft returns the number of unread bits in the buffered byte.
func (r *Reader) BitsLeft() uint {
	return r.left
}

// BytesRead returns the number of bytes fetched from the source so far.
func (r *Reader) BytesRead() int {
	return r.n
}

// ReadBits8 reads n bits (0-8) and returns them right-aligned.
// A zero-bit read returns 0 without touching the source.
func (r *Reader) ReadBits8(n uint) (uint8, error) {
	if n > 8 {
		return 0, ErrBitCount
	}
	if n == 0 {
		return 0, nil
	}
	mask := uint8(1<<n - 1)

	if n <= r.left {
		r.left -= n
		return (r.cur >> r.left) & mask, nil
	}

	// Remaining bits of cur form the high part, the next byte the low part.
	prev := r.cur
	need := n - r.left
	if err := r.fetch(r.pair[:1]); err != nil {
		return 0, err
	}
	r.cur = r.pair[0]
	r.left = 8 - need
	return (prev<<need | r.cur>>r.left) & mask, nil
}

// ReadBits16 reads n bits (0-16) and returns them right-aligned.
// Up to two bytes are fetched in a single source call.
func (r *Reader) ReadBits16(n uint) (uint16, error) {
	if n > 16 {
		return 0, ErrBitCount
	}
	if n == 0 {
		return 0, nil
	}
	mask := uint16(1<<n - 1)

	switch {
	case n <= r.left:
		r.left -= n
		return uint16(r.cur>>r.left) & mask, nil

	case n <= r.left+8:
		prev := uint16(r.cur)
		need := n - r.left
		if err := r.fetch(r.pair[:1]); err != nil {
			return 0, err
		}
		r.cur = r.pair[0]
		r.left = 8 - need
		return (prev<<need | uint16(r.cur)>>r.left) & mask, nil

	default:
		prev := uint16(r.cur)
		need := n - r.left // 9-16
		if err := r.fetch(r.pair[:2]); err != nil {
			return 0, err
		}
		r.cur = r.pair[1]
		r.left = 16 - need
		v := prev<<need | uint16(r.pair[0])<<(need-8) | uint16(r.cur)>>r.left
		return v & mask, nil
	}
}

func (r *Reader) fetch(p []byte) error {
	if err := r.src.ReadFull(p); err != nil {
		return err
	}
	r.n += len(p)
	return nil
}
