// Package a2dp carries SBC frames over RTP as defined by the Bluetooth A2DP
// specification.
//
// Every RTP payload starts with a one-byte media payload header followed by
// either a run of whole SBC frames or one fragment of a frame that does not
// fit into a single packet.
package a2dp

import "errors"

// PayloadHeaderSize is the size of the SBC media payload header.
const PayloadHeaderSize = 1

// MaxFrames is the largest frame or fragment count the header can carry.
const MaxFrames = 15

// Sentinel errors
var (
	ErrShortPacket  = errors.New("a2dp: packet too short")
	ErrFragmentLost = errors.New("a2dp: fragment lost")
)

// PayloadHeader is the SBC media payload header.
//
// Bit 7 marks a fragmented frame, bit 6 the first and bit 5 the last
// fragment. Bit 4 is reserved. The low nibble holds the number of frames
// in the packet, or for a fragment the number of fragments left including
// this one.
type PayloadHeader struct {
	Fragmented bool
	Start      bool
	Last       bool
	Frames     uint8
}

// ParsePayloadHeader decodes the header byte. The reserved bit is ignored.
func ParsePayloadHeader(b byte) PayloadHeader {
	return PayloadHeader{
		Fragmented: b&0x80 != 0,
		Start:      b&0x40 != 0,
		Last:       b&0x20 != 0,
		Frames:     b & 0x0F,
	}
}

// Byte encodes the header. Frames is masked to four bits.
func (h PayloadHeader) Byte() byte {
	b := h.Frames & 0x0F
	if h.Fragmented {
		b |= 0x80
	}
	if h.Start {
		b |= 0x40
	}
	if h.Last {
		b |= 0x20
	}
	return b
}
