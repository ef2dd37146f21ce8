package sbc

import (
	"bufio"
	"io"

	"github.com/sirupsen/logrus"
)

// Options configures a Decoder.
type Options struct {
	// Resync makes the decoder scan forward to the next sync word instead of
	// failing on an unknown sync word or a checksum mismatch. Bytes skipped
	// and frames dropped are reported in FrameInfo.
	Resync bool

	// SkipCRC disables checksum verification. The checksum byte is still
	// read.
	SkipCRC bool

	// Logger receives resynchronization and reconfiguration events.
	// Nil disables logging.
	Logger logrus.FieldLogger
}

// Decoder decodes a stream of back-to-back SBC or mSBC frames.
//
// The filter state is created from the first frame's header and replaced
// whenever the channel or sub-band count changes. Decoder instances are not
// safe for concurrent use.
type Decoder struct {
	r     *bufio.Reader
	src   *ReaderSource
	opts  Options
	log   logrus.FieldLogger
	state *FilterState

	header Header
	frames uint64
}

// NewDecoder returns a decoder reading frames from r. opts may be nil.
func NewDecoder(r io.Reader, opts *Options) *Decoder {
	d := &Decoder{}
	if opts != nil {
		d.opts = *opts
	}
	d.log = d.opts.Logger
	if d.log == nil {
		d.log = discardLogger()
	}
	d.r = bufio.NewReader(r)
	d.src = NewReaderSource(d.r)
	return d
}

// Header returns the header of the last decoded frame.
func (d *Decoder) Header() Header {
	return d.header
}

// Frames returns the number of frames decoded so far.
func (d *Decoder) Frames() uint64 {
	return d.frames
}

// Config returns the current filter configuration. The second result is
// false before the first frame.
func (d *Decoder) Config() (Config, bool) {
	if d.state == nil {
		return 0, false
	}
	return d.state.Config(), true
}

// Reset drops the filter state so that the next frame starts from silence.
func (d *Decoder) Reset() {
	d.state = nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
