// Package output serializes decoded PCM.
package output

import "encoding/binary"

// BytesPerSample is the size of one 16-bit PCM sample.
const BytesPerSample = 2

// PutInt16LE writes samples into dst as little-endian 16-bit PCM and returns
// the number of bytes written. dst must hold len(samples)*2 bytes.
func PutInt16LE(dst []byte, samples []int16) int {
	_ = dst[:len(samples)*BytesPerSample]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*BytesPerSample:], uint16(s))
	}
	return len(samples) * BytesPerSample
}

// AppendInt16LE appends samples to dst as little-endian 16-bit PCM.
func AppendInt16LE(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}
