package sbc

import "fmt"

// mSBC frames always carry these parameters.
const (
	msbcFrequency   = Freq16000
	msbcBlocks      = 15
	msbcChannelMode = Mono
	msbcAllocation  = Loudness
	msbcSubbands    = Subbands8
	msbcBitpool     = 24
)

// Header describes one SBC or mSBC frame.
//
// On the wire it is three bytes: the sync word, a parameter byte and the
// bitpool. The parameter byte packs, from the most significant bit, the
// frequency (2 bits), blocks (2), channel mode (2), allocation method (1)
// and sub-bands (1). An mSBC header has fixed parameters; its second and
// third bytes are reserved and written as zero.
type Header struct {
	msbc        bool
	frequency   Frequency
	blocks      Blocks
	channelMode ChannelMode
	allocation  AllocationMethod
	subbands    Subbands
	bitpool     uint8
}

// MSBCHeader returns the fixed mSBC header.
func MSBCHeader() Header {
	return Header{msbc: true}
}

// NewHeader returns a standard SBC header. Each field is masked to its
// wire width.
func NewHeader(freq Frequency, blocks Blocks, mode ChannelMode, alloc AllocationMethod, subbands Subbands, bitpool uint8) Header {
	return Header{
		frequency:   freq & 3,
		blocks:      blocks & 3,
		channelMode: mode & 3,
		allocation:  alloc & 1,
		subbands:    subbands & 1,
		bitpool:     bitpool,
	}
}

// ParseHeader decodes a header from its three wire bytes.
// An unknown sync word returns ErrUnrecognizedSync.
func ParseHeader(b [HeaderSize]byte) (Header, error) {
	switch b[0] {
	case SyncMSBC:
		return MSBCHeader(), nil
	case SyncSBC:
		return NewHeader(
			Frequency(b[1]>>6),
			Blocks(b[1]>>4),
			ChannelMode(b[1]>>2),
			AllocationMethod(b[1]>>1),
			Subbands(b[1]),
			b[2],
		), nil
	}
	return Header{}, ErrUnrecognizedSync
}

// DecodeHeader reads three bytes from src and parses them.
func DecodeHeader(src ByteSource) (Header, error) {
	var b [HeaderSize]byte
	if err := src.ReadFull(b[:]); err != nil {
		return Header{}, underflow(err)
	}
	return ParseHeader(b)
}

// Bytes returns the three wire bytes of the header.
func (h Header) Bytes() [HeaderSize]byte {
	if h.msbc {
		return [HeaderSize]byte{SyncMSBC, 0, 0}
	}
	return [HeaderSize]byte{
		SyncSBC,
		byte(h.frequency&3)<<6 | byte(h.blocks&3)<<4 | byte(h.channelMode&3)<<2 |
			byte(h.allocation&1)<<1 | byte(h.subbands&1),
		h.bitpool,
	}
}

// Encode writes the three wire bytes to sink.
func (h Header) Encode(sink ByteSink) error {
	b := h.Bytes()
	return sink.WriteBytes(b[:])
}

// IsMSBC reports whether this is an mSBC header.
func (h Header) IsMSBC() bool {
	return h.msbc
}

// Frequency returns the sampling frequency field.
func (h Header) Frequency() Frequency {
	if h.msbc {
		return msbcFrequency
	}
	return h.frequency
}

// Blocks returns the block count field. mSBC frames carry no such field
// and report false; BlockCount gives their fixed count of 15.
func (h Header) Blocks() (Blocks, bool) {
	if h.msbc {
		return 0, false
	}
	return h.blocks, true
}

// BlockCount returns the number of blocks in the frame.
func (h Header) BlockCount() int {
	if h.msbc {
		return msbcBlocks
	}
	return h.blocks.Count()
}

// ChannelMode returns the channel mode.
func (h Header) ChannelMode() ChannelMode {
	if h.msbc {
		return msbcChannelMode
	}
	return h.channelMode
}

// Channels returns the number of audio channels.
func (h Header) Channels() int {
	return h.ChannelMode().Channels()
}

// AllocationMethod returns the bit allocation method.
func (h Header) AllocationMethod() AllocationMethod {
	if h.msbc {
		return msbcAllocation
	}
	return h.allocation
}

// Subbands returns the sub-band field.
func (h Header) Subbands() Subbands {
	if h.msbc {
		return msbcSubbands
	}
	return h.subbands
}

// SubbandCount returns 4 or 8.
func (h Header) SubbandCount() int {
	return h.Subbands().Count()
}

// Bitpool returns the bitpool size.
func (h Header) Bitpool() uint8 {
	if h.msbc {
		return msbcBitpool
	}
	return h.bitpool
}

// SampleRate returns the sampling frequency in Hz.
func (h Header) SampleRate() int {
	return h.Frequency().SampleRate()
}

// SamplesPerFrame returns the PCM samples per channel in one frame.
func (h Header) SamplesPerFrame() int {
	return h.BlockCount() * h.SubbandCount()
}

// FrameLength returns the size in bytes of a frame with this header,
// including the header and checksum byte, as defined by A2DP.
func (h Header) FrameLength() int {
	ch := h.Channels()
	sb := h.SubbandCount()
	bitpool := int(h.Bitpool())
	blocks := h.BlockCount()

	n := HeaderSize + 1 + (4*sb*ch)/8
	switch h.ChannelMode() {
	case Mono, DualChannel:
		n += (blocks*ch*bitpool + 7) / 8
	case Stereo:
		n += (blocks*bitpool + 7) / 8
	case JointStereo:
		n += (sb + blocks*bitpool + 7) / 8
	}
	return n
}

// BitRate returns the bit rate in bits per second.
func (h Header) BitRate() int {
	return 8 * h.FrameLength() * h.SampleRate() / h.SamplesPerFrame()
}

func (h Header) String() string {
	if h.msbc {
		return "mSBC"
	}
	return fmt.Sprintf("SBC %s %s blocks=%s subbands=%s %s bitpool=%d",
		h.frequency, h.channelMode, h.blocks, h.subbands, h.allocation, h.bitpool)
}
