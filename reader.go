package sbc

import (
	"io"

	"github.com/llehouerou/go-sbc/internal/output"
)

// Reader decodes an SBC stream, implementing io.Reader.
// Output is interleaved little-endian 16-bit PCM.
//
// Example:
//
//	r := sbc.NewReader(file, nil)
//	io.Copy(audioOutput, r)
type Reader struct {
	dec    *Decoder
	pcm    [MaxFrameSamples]int16
	buf    [MaxFrameSamples * output.BytesPerSample]byte
	data   []byte // Unread part of buf
	last   FrameInfo
	onInfo func(FrameInfo)
}

// NewReader returns a Reader decoding frames from r. opts may be nil.
func NewReader(r io.Reader, opts *Options) *Reader {
	return &Reader{dec: NewDecoder(r, opts)}
}

// Decoder returns the underlying frame decoder.
func (r *Reader) Decoder() *Decoder {
	return r.dec
}

// OnFrame registers a callback invoked after each decoded frame, before its
// PCM is returned by Read.
func (r *Reader) OnFrame(fn func(FrameInfo)) {
	r.onInfo = fn
}

// Read implements io.Reader, decoding frames as needed to fill p.
func (r *Reader) Read(p []byte) (int, error) {
	for len(r.data) == 0 {
		info, err := r.dec.Decode(r.pcm[:])
		if err != nil {
			return 0, err
		}
		r.last = info
		if r.onInfo != nil {
			r.onInfo(info)
		}
		n := output.PutInt16LE(r.buf[:], r.pcm[:info.Samples])
		r.data = r.buf[:n]
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// SampleRate returns the sample rate of the last decoded frame, or 0 before
// the first frame.
func (r *Reader) SampleRate() int {
	if r.dec.Frames() == 0 {
		return 0
	}
	return r.last.Header.SampleRate()
}

// Channels returns the channel count of the last decoded frame, or 0 before
// the first frame.
func (r *Reader) Channels() int {
	return r.last.Channels
}
