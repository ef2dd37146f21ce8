package a2dp

import (
	"errors"

	"github.com/llehouerou/go-sbc"
)

// ErrTruncatedFrame is returned when a buffer ends inside an SBC frame.
var ErrTruncatedFrame = errors.New("a2dp: truncated frame")

// SplitFrames cuts data into whole SBC frames using the frame length each
// header announces. The returned slices alias data.
func SplitFrames(data []byte) ([][]byte, error) {
	var frames [][]byte
	for len(data) > 0 {
		if len(data) < sbc.HeaderSize {
			return frames, ErrTruncatedFrame
		}
		h, err := sbc.ParseHeader([sbc.HeaderSize]byte(data[:sbc.HeaderSize]))
		if err != nil {
			return frames, err
		}
		n := h.FrameLength()
		if n > len(data) {
			return frames, ErrTruncatedFrame
		}
		frames = append(frames, data[:n:n])
		data = data[n:]
	}
	return frames, nil
}

// Payloader packs SBC frames into A2DP payloads. It implements
// rtp.Payloader.
//
// Whole frames are grouped, up to MaxFrames per packet. A frame larger than
// one packet is sent alone as a series of fragments.
type Payloader struct{}

// Payload splits payload, a buffer of whole frames, into packets of at most
// mtu bytes. It returns nil when payload does not parse as frames or a
// frame would need more than MaxFrames fragments.
func (p *Payloader) Payload(mtu uint16, payload []byte) [][]byte {
	var out [][]byte
	if len(payload) == 0 || int(mtu) <= PayloadHeaderSize {
		return out
	}
	room := int(mtu) - PayloadHeaderSize

	frames, err := SplitFrames(payload)
	if err != nil {
		return nil
	}

	var cur []byte
	count := 0
	flush := func() {
		if count == 0 {
			return
		}
		cur[0] = PayloadHeader{Frames: uint8(count)}.Byte()
		out = append(out, cur)
		cur, count = nil, 0
	}

	for _, f := range frames {
		if len(f) > room {
			flush()
			frags := fragment(f, room)
			if frags == nil {
				return nil
			}
			out = append(out, frags...)
			continue
		}
		if count == MaxFrames || len(cur)+len(f) > int(mtu) {
			flush()
		}
		if cur == nil {
			cur = make([]byte, PayloadHeaderSize, int(mtu))
		}
		cur = append(cur, f...)
		count++
	}
	flush()
	return out
}

// fragment splits one frame into packets carrying room bytes each. The
// header counts down the fragments left, ending at 1.
func fragment(frame []byte, room int) [][]byte {
	n := (len(frame) + room - 1) / room
	if n > MaxFrames {
		return nil
	}
	out := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		chunk := frame[:min(room, len(frame))]
		frame = frame[len(chunk):]

		o := make([]byte, PayloadHeaderSize+len(chunk))
		o[0] = PayloadHeader{
			Fragmented: true,
			Start:      i == 0,
			Last:       i == n-1,
			Frames:     uint8(n - i),
		}.Byte()
		copy(o[PayloadHeaderSize:], chunk)
		out = append(out, o)
	}
	return out
}
