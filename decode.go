package sbc

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// FrameInfo describes one call to Decoder.Decode.
type FrameInfo struct {
	Header   Header
	Samples  int // Interleaved samples written to dst
	Bytes    int // Frame bytes consumed, including header and padding
	Skipped  int // Bytes discarded while searching for a frame
	Dropped  int // Frames discarded on checksum mismatch
	Channels int
}

// Decode decodes the next frame into dst as channel-interleaved samples.
//
// dst must hold Channels*SamplesPerFrame samples of the frame, which
// MaxFrameSamples always covers; otherwise ErrBufferTooSmall is returned and
// the frame is left unread. At a clean end of stream Decode returns io.EOF.
// A frame cut short by the end of input returns ErrSourceUnderflow wrapping
// io.ErrUnexpectedEOF.
func (d *Decoder) Decode(dst []int16) (FrameInfo, error) {
	var info FrameInfo
	for {
		h, skipped, err := d.sync()
		info.Skipped += skipped
		if err != nil {
			return info, err
		}
		if need := h.Channels() * h.SamplesPerFrame(); len(dst) < need {
			return info, ErrBufferTooSmall
		}
		if _, err := d.r.Discard(HeaderSize); err != nil {
			return info, underflow(err)
		}

		start := d.src.Count()
		n, err := d.decodeFrame(h, dst)
		err = truncated(err)
		consumed := HeaderSize + int(d.src.Count()-start)

		if errors.Is(err, ErrChecksumMismatch) && d.opts.Resync {
			d.log.WithFields(logrus.Fields{
				"frame":  d.frames,
				"header": h.String(),
			}).Warn("Checksum mismatch, resynchronizing")
			info.Skipped += consumed
			info.Dropped++
			continue
		}
		if err != nil {
			return info, err
		}

		consumed += d.skipPadding(h, consumed)

		d.header = h
		d.frames++
		info.Header = h
		info.Samples = n
		info.Bytes = consumed
		info.Channels = h.Channels()
		return info, nil
	}
}

// sync peeks at the next header without consuming it. With Resync set,
// bytes that do not start a recognized header are discarded one at a time.
func (d *Decoder) sync() (Header, int, error) {
	skipped := 0
	defer func() {
		if skipped > 0 {
			d.log.WithField("bytes", skipped).Debug("Skipped bytes before sync word")
		}
	}()

	for {
		b, err := d.r.Peek(HeaderSize)
		if len(b) < HeaderSize {
			if !errors.Is(err, io.EOF) {
				return Header{}, skipped, err
			}
			if len(b) == 0 {
				return Header{}, skipped, io.EOF
			}
			if d.opts.Resync {
				n, _ := d.r.Discard(len(b))
				skipped += n
				return Header{}, skipped, io.EOF
			}
			return Header{}, skipped, underflow(io.ErrUnexpectedEOF)
		}

		h, err := ParseHeader([HeaderSize]byte(b))
		if err == nil {
			return h, skipped, nil
		}
		if !d.opts.Resync {
			return Header{}, skipped, err
		}
		if _, err := d.r.Discard(1); err != nil {
			return Header{}, skipped, err
		}
		skipped++
	}
}

func (d *Decoder) decodeFrame(h Header, dst []int16) (int, error) {
	cfg, err := ConfigFor(h.Channels(), h.SubbandCount())
	if err != nil {
		return 0, err
	}
	state := d.state
	if state == nil || state.Config() != cfg {
		state = NewFilterState(cfg)
	}

	var fd *FrameDecoder
	if d.opts.SkipCRC {
		fd, err = NewFrameDecoderSkipCRC(h, state, d.src)
	} else {
		fd, err = NewFrameDecoder(h, state, d.src)
	}
	if err != nil {
		return 0, err
	}

	if state != d.state {
		fields := logrus.Fields{"config": cfg.String(), "frame": d.frames}
		if d.state != nil {
			fields["previous"] = d.state.Config().String()
		}
		d.log.WithFields(fields).Debug("Configured filter state")
		d.state = state
	}

	n := 0
	for b, err := range fd.All() {
		if err != nil {
			return n, err
		}
		n += b.Interleave(dst[n:])
	}
	return n, nil
}

// skipPadding discards the bytes between the end of the coded audio and the
// frame length given by the header. A stream that ends inside the padding
// is not an error.
func (d *Decoder) skipPadding(h Header, consumed int) int {
	pad := h.FrameLength() - consumed
	if pad <= 0 {
		return 0
	}
	n, err := d.r.Discard(pad)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"want": pad,
			"got":  n,
		}).Debug("Stream ended inside frame padding")
	}
	return n
}

// truncated maps an end of input inside a frame to an unexpected EOF, so that
// io.EOF is only ever returned between frames.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return underflow(io.ErrUnexpectedEOF)
	}
	return err
}
