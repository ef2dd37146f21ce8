package output

import (
	"encoding/binary"
	"errors"
	"io"
)

// WAVHeaderSize is the size of a canonical PCM WAVE header.
const WAVHeaderSize = 44

// ErrWAVFormat is returned when the format changes after samples were written.
var ErrWAVFormat = errors.New("output: WAV format changed after data was written")

// WAVWriter writes 16-bit PCM into a RIFF/WAVE container.
//
// The header is written with zero sizes before the first sample and patched
// on Close, so the destination must support seeking.
type WAVWriter struct {
	w          io.WriteSeeker
	sampleRate int
	channels   int
	dataSize   uint32
	started    bool
	buf        []byte
}

// NewWAVWriter returns a writer for the given format.
func NewWAVWriter(w io.WriteSeeker, sampleRate, channels int) *WAVWriter {
	return &WAVWriter{w: w, sampleRate: sampleRate, channels: channels}
}

// SetFormat changes the sample rate and channel count. It fails once data
// has been written with a different format.
func (w *WAVWriter) SetFormat(sampleRate, channels int) error {
	if sampleRate == w.sampleRate && channels == w.channels {
		return nil
	}
	if w.started {
		return ErrWAVFormat
	}
	w.sampleRate = sampleRate
	w.channels = channels
	return nil
}

// WriteSamples appends interleaved samples.
func (w *WAVWriter) WriteSamples(samples []int16) error {
	w.buf = AppendInt16LE(w.buf[:0], samples)
	_, err := w.Write(w.buf)
	return err
}

// Write appends raw little-endian PCM bytes.
func (w *WAVWriter) Write(p []byte) (int, error) {
	if !w.started {
		var header [WAVHeaderSize]byte
		PutWAVHeader(header[:], 0, w.sampleRate, w.channels)
		if _, err := w.w.Write(header[:]); err != nil {
			return 0, err
		}
		w.started = true
	}
	n, err := w.w.Write(p)
	w.dataSize += uint32(n)
	return n, err
}

// DataSize returns the number of PCM bytes written.
func (w *WAVWriter) DataSize() uint32 {
	return w.dataSize
}

// Close patches the RIFF and data chunk sizes and leaves the underlying
// writer positioned at its end. It does not close the underlying writer.
func (w *WAVWriter) Close() error {
	if !w.started {
		if _, err := w.Write(nil); err != nil {
			return err
		}
	}

	var header [WAVHeaderSize]byte
	PutWAVHeader(header[:], w.dataSize, w.sampleRate, w.channels)

	if _, err := w.w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.w.Seek(0, io.SeekEnd)
	return err
}

// PutWAVHeader fills dst with a 16-bit PCM WAVE header.
func PutWAVHeader(dst []byte, dataSize uint32, sampleRate, channels int) {
	_ = dst[WAVHeaderSize-1]
	blockAlign := channels * BytesPerSample

	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+dataSize)
	copy(dst[8:12], "WAVE")
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16)
	binary.LittleEndian.PutUint16(dst[20:22], 1)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(dst[34:36], 16)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], dataSize)
}
