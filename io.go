package sbc

import "io"

// ByteSource supplies whole bytes to the decoder.
//
// ReadFull fills p completely or returns an error matching
// ErrSourceUnderflow. Implementations decide whether a failed read
// consumes any bytes.
type ByteSource interface {
	ReadFull(p []byte) error
}

// ByteSink accepts encoded bytes, such as a serialized header.
type ByteSink interface {
	WriteBytes(p []byte) error
}

// SliceSource reads from an in-memory byte slice.
// A read that cannot be satisfied in full consumes nothing.
type SliceSource struct {
	data []byte
}

// NewSliceSource returns a source positioned at the start of data.
func NewSliceSource(data []byte) *SliceSource {
	return &SliceSource{data: data}
}

// ReadFull implements ByteSource.
func (s *SliceSource) ReadFull(p []byte) error {
	if len(p) > len(s.data) {
		return ErrSourceUnderflow
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	return nil
}

// Len returns the number of unread bytes.
func (s *SliceSource) Len() int {
	return len(s.data)
}

// Remaining returns the unread bytes without consuming them.
func (s *SliceSource) Remaining() []byte {
	return s.data
}

// ReaderSource adapts an io.Reader into a ByteSource.
// A short read may leave the underlying reader partially consumed.
type ReaderSource struct {
	r io.Reader
	n int64
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// ReadFull implements ByteSource. End of input is reported as
// ErrSourceUnderflow wrapping io.EOF or io.ErrUnexpectedEOF.
func (s *ReaderSource) ReadFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.n += int64(n)
	return underflow(err)
}

// Count returns the number of bytes consumed from the reader.
func (s *ReaderSource) Count() int64 {
	return s.n
}

// SliceSink writes into a fixed byte slice.
// Bytes beyond its capacity are dropped without error.
type SliceSink struct {
	buf []byte
	n   int
}

// NewSliceSink returns a sink that fills buf from the start.
func NewSliceSink(buf []byte) *SliceSink {
	return &SliceSink{buf: buf}
}

// WriteBytes implements ByteSink.
func (s *SliceSink) WriteBytes(p []byte) error {
	s.n += copy(s.buf[s.n:], p)
	return nil
}

// Len returns the number of bytes written so far.
func (s *SliceSink) Len() int {
	return s.n
}

// Bytes returns the written prefix of the buffer.
func (s *SliceSink) Bytes() []byte {
	return s.buf[:s.n]
}
