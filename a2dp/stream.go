package a2dp

import (
	"errors"
	"io"

	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

// Stats counts packet-level events seen by a Stream.
type Stats struct {
	Packets   uint64 // Packets received
	Lost      uint64 // Packets missing from the sequence
	Late      uint64 // Reordered or duplicate packets discarded
	Invalid   uint64 // Packets that failed to parse
	Fragments uint64 // Partially assembled frames dropped
}

// Stream is an io.Reader of SBC frames depacketized from an RTP source.
//
// Packets are expected in sequence order. A gap drops any partial frame;
// packets older than the last one accepted are discarded. Frame boundaries
// are preserved across losses, so the output can be fed directly to
// sbc.NewDecoder.
type Stream struct {
	src PacketSource
	dep Depacketizer
	log logrus.FieldLogger

	buf     []byte
	seq     uint16
	ssrc    uint32
	started bool
	stats   Stats
}

// NewStream returns a stream reading packets from src. log may be nil.
func NewStream(src PacketSource, log logrus.FieldLogger) *Stream {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Stream{src: src, log: log}
}

// Read fills p with frame bytes. Errors from the packet source are
// returned as is, except for invalid packets, which are counted and
// skipped.
func (s *Stream) Read(p []byte) (int, error) {
	for len(s.buf) == 0 {
		pkt, err := s.src.ReadPacket()
		if errors.Is(err, ErrInvalidPacket) {
			s.stats.Invalid++
			s.log.WithError(err).Warn("Skipping invalid RTP packet")
			continue
		}
		if err != nil {
			return 0, err
		}
		s.receive(pkt)
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

// Stats returns the counters accumulated so far.
func (s *Stream) Stats() Stats {
	st := s.stats
	st.Fragments = uint64(s.dep.Dropped())
	return st
}

func (s *Stream) receive(pkt *rtp.Packet) {
	s.stats.Packets++

	if s.started {
		if pkt.SSRC != s.ssrc {
			s.log.WithFields(logrus.Fields{
				"previous": s.ssrc,
				"ssrc":     pkt.SSRC,
			}).Info("RTP source changed")
			s.dep.Reset()
		} else if gap := pkt.SequenceNumber - s.seq - 1; gap != 0 {
			if gap >= 0x8000 {
				s.stats.Late++
				s.log.WithField("sequence", pkt.SequenceNumber).Debug("Discarding late RTP packet")
				return
			}
			s.stats.Lost += uint64(gap)
			s.log.WithFields(logrus.Fields{
				"sequence": pkt.SequenceNumber,
				"lost":     gap,
			}).Warn("RTP packets lost")
			s.dep.Reset()
		}
	}
	s.started = true
	s.seq = pkt.SequenceNumber
	s.ssrc = pkt.SSRC

	data, err := s.dep.Unmarshal(pkt.Payload)
	if err != nil {
		s.stats.Invalid++
		s.log.WithError(err).WithField("sequence", pkt.SequenceNumber).Warn("Dropping RTP payload")
		return
	}
	s.buf = data
}
