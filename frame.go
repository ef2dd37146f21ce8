package sbc

import (
	"errors"
	"iter"

	"github.com/llehouerou/go-sbc/internal/allocation"
	"github.com/llehouerou/go-sbc/internal/bits"
	"github.com/llehouerou/go-sbc/internal/crc"
	"github.com/llehouerou/go-sbc/internal/spectrum"
)

// FrameDecoder decodes the blocks of one frame.
//
// It is created after the header has been read. Construction reads the
// frame side information (checksum, joint stereo flags, scale factors) and
// runs the bit allocation; each call to Next then reads and synthesizes one
// block. The filter state is borrowed for the life of the decoder.
type FrameDecoder struct {
	header Header
	state  *FilterState
	r      bits.Reader

	joint     uint8 // One flag per sub-band, first sub-band in the high bit
	scale     allocation.Matrix
	widths    allocation.Matrix
	remaining int
	err       error
}

// NewFrameDecoder reads the checksum byte and side information from src
// and verifies the checksum.
//
// The filter state must match the header's channel and sub-band counts;
// otherwise ErrConfigMismatch is returned before any byte is read.
func NewFrameDecoder(h Header, state *FilterState, src ByteSource) (*FrameDecoder, error) {
	if !state.Config().Matches(h) {
		return nil, ErrConfigMismatch
	}
	var check [1]byte
	if err := src.ReadFull(check[:]); err != nil {
		return nil, underflow(err)
	}
	d, err := newFrameDecoder(h, state, src)
	if err != nil {
		return nil, err
	}
	if d.checksum() != check[0] {
		return nil, ErrChecksumMismatch
	}
	return d, nil
}

// NewFrameDecoderSkipCRC reads the checksum byte but does not verify it.
func NewFrameDecoderSkipCRC(h Header, state *FilterState, src ByteSource) (*FrameDecoder, error) {
	if !state.Config().Matches(h) {
		return nil, ErrConfigMismatch
	}
	var check [1]byte
	if err := src.ReadFull(check[:]); err != nil {
		return nil, underflow(err)
	}
	return newFrameDecoder(h, state, src)
}

// NewFrameDecoderNoCRC decodes a frame whose checksum byte is absent, as in
// streams that strip it after transport-level integrity checks.
func NewFrameDecoderNoCRC(h Header, state *FilterState, src ByteSource) (*FrameDecoder, error) {
	if !state.Config().Matches(h) {
		return nil, ErrConfigMismatch
	}
	return newFrameDecoder(h, state, src)
}

func newFrameDecoder(h Header, state *FilterState, src ByteSource) (*FrameDecoder, error) {
	d := &FrameDecoder{
		header:    h,
		state:     state,
		remaining: h.BlockCount(),
	}
	d.r.Reset(src)

	channels := h.Channels()
	subbands := h.SubbandCount()

	if h.ChannelMode() == JointStereo {
		joint, err := d.r.ReadBits8(uint(subbands))
		if err != nil {
			return nil, underflow(err)
		}
		d.joint = joint
	}

	for ch := 0; ch < channels; ch++ {
		for sb := 0; sb < subbands; sb++ {
			sf, err := d.r.ReadBits8(4)
			if err != nil {
				return nil, underflow(err)
			}
			d.scale[ch][sb] = sf
		}
	}

	mode := h.ChannelMode()
	d.widths = allocation.Compute(&allocation.Params{
		Method:   allocation.Method(h.AllocationMethod()),
		Channels: channels,
		Subbands: subbands,
		Coupled:  mode == Stereo || mode == JointStereo,
		Bitpool:  int(h.Bitpool()),
		Offsets:  state.offsets(h.Frequency()),
	}, &d.scale)

	return d, nil
}

// checksum computes the CRC-8 over the header parameter bytes, the joint
// stereo flags as they appear on the wire and the packed scale factors.
func (d *FrameDecoder) checksum() uint8 {
	hb := d.header.Bytes()
	c := crc.Checksum(crc.Init, hb[1:], 16)

	subbands := d.header.SubbandCount()
	if d.header.ChannelMode() == JointStereo {
		c = crc.Checksum(c, []byte{d.joint << (8 - subbands)}, subbands)
	}

	for ch := 0; ch < d.header.Channels(); ch++ {
		var packed [MaxSubbands / 2]byte
		for sb := 0; sb < subbands; sb++ {
			shift := uint(^sb&1) * 4
			packed[sb>>1] |= (d.scale[ch][sb] & 0x0F) << shift
		}
		c = crc.Checksum(c, packed[:], subbands*4)
	}
	return c
}

// Header returns the frame header.
func (d *FrameDecoder) Header() Header {
	return d.header
}

// Joint returns the joint stereo flags, first sub-band in the most
// significant of the low SubbandCount bits.
func (d *FrameDecoder) Joint() uint8 {
	return d.joint
}

// ScaleFactor returns the scale factor of a channel and sub-band.
func (d *FrameDecoder) ScaleFactor(ch, sb int) uint8 {
	return d.scale[ch][sb]
}

// BitWidth returns the allocated width in bits of a channel and sub-band.
func (d *FrameDecoder) BitWidth(ch, sb int) uint8 {
	return d.widths[ch][sb]
}

// Remaining returns the number of blocks not yet decoded.
func (d *FrameDecoder) Remaining() int {
	return d.remaining
}

// Next decodes the next block. It returns ErrNoMoreBlocks once every block
// has been produced. After a read error the same error is returned by all
// later calls.
func (d *FrameDecoder) Next() (Block, error) {
	if d.err != nil {
		return Block{}, d.err
	}
	if d.remaining == 0 {
		return Block{}, ErrNoMoreBlocks
	}

	channels := d.header.Channels()
	subbands := d.header.SubbandCount()

	var s Samples
	for ch := 0; ch < channels; ch++ {
		for sb := 0; sb < subbands; sb++ {
			width := d.widths[ch][sb]
			if width == 0 {
				continue
			}
			code, err := d.r.ReadBits16(uint(width))
			if err != nil {
				d.err = underflow(err)
				d.remaining = 0
				return Block{}, d.err
			}
			s[ch][sb] = spectrum.Dequantize(code, width, d.scale[ch][sb])
		}
	}

	if channels == 2 {
		spectrum.JointStereo(s[0][:subbands], s[1][:subbands], d.joint, subbands)
	}

	d.remaining--
	return d.state.Filter(&s), nil
}

// All returns an iterator over the remaining blocks. It stops after the
// last block or yields a single error and stops.
func (d *FrameDecoder) All() iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		for {
			b, err := d.Next()
			if errors.Is(err, ErrNoMoreBlocks) {
				return
			}
			if err != nil {
				yield(Block{}, err)
				return
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}
