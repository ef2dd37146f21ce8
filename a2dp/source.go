package a2dp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/pion/rtp"
)

// MaxPacketSize bounds a single RTP packet read from a connection or capture.
const MaxPacketSize = 0xFFFF

var (
	// ErrInvalidPacket wraps RTP parse failures. Stream skips such packets.
	ErrInvalidPacket = errors.New("a2dp: invalid RTP packet")

	// ErrPacketTooLarge is returned when a packet does not fit the capture
	// length prefix.
	ErrPacketTooLarge = errors.New("a2dp: packet too large")
)

// PacketSource yields RTP packets. The returned packet must stay valid until
// the next call.
type PacketSource interface {
	ReadPacket() (*rtp.Packet, error)
}

func parsePacket(buf []byte) (*rtp.Packet, error) {
	pkt := &rtp.Packet{}
	if err := pkt.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPacket, err)
	}
	return pkt, nil
}

// CaptureReader reads packets stored back to back, each preceded by its
// length as a 16-bit big-endian integer.
type CaptureReader struct {
	r      io.Reader
	prefix [2]byte
}

// NewCaptureReader returns a reader over a capture stream.
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{r: r}
}

// ReadPacket returns the next packet. io.EOF is returned only at a packet
// boundary.
func (c *CaptureReader) ReadPacket() (*rtp.Packet, error) {
	if _, err := io.ReadFull(c.r, c.prefix[:]); err != nil {
		return nil, err
	}
	buf := make([]byte, binary.BigEndian.Uint16(c.prefix[:]))
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return parsePacket(buf)
}

// CaptureWriter writes packets in the format read by CaptureReader.
type CaptureWriter struct {
	w io.Writer
}

// NewCaptureWriter returns a writer producing a capture stream.
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{w: w}
}

// WritePacket appends one length-prefixed packet.
func (c *CaptureWriter) WritePacket(pkt *rtp.Packet) error {
	size := pkt.MarshalSize()
	if size > MaxPacketSize {
		return ErrPacketTooLarge
	}
	buf := make([]byte, 2+size)
	binary.BigEndian.PutUint16(buf, uint16(size))
	if _, err := pkt.MarshalTo(buf[2:]); err != nil {
		return err
	}
	_, err := c.w.Write(buf)
	return err
}

// ConnSource reads one RTP packet per datagram from a packet connection.
type ConnSource struct {
	conn net.PacketConn
	buf  []byte
}

// NewConnSource returns a source reading from conn.
func NewConnSource(conn net.PacketConn) *ConnSource {
	return &ConnSource{conn: conn, buf: make([]byte, MaxPacketSize)}
}

// ReadPacket blocks until a datagram arrives. The packet is copied out of
// the receive buffer.
func (c *ConnSource) ReadPacket() (*rtp.Packet, error) {
	n, _, err := c.conn.ReadFrom(c.buf)
	if err != nil {
		return nil, err
	}
	return parsePacket(append([]byte(nil), c.buf[:n]...))
}
