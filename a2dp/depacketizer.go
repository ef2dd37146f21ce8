package a2dp

// Depacketizer extracts SBC frames from A2DP payloads and reassembles
// fragmented frames. It implements rtp.Depacketizer.
type Depacketizer struct {
	partial []byte
	next    uint8 // Fragment count expected in the next packet
	active  bool
	dropped int
}

// Unmarshal returns the frames carried by packet.
//
// A fragment that does not complete a frame returns nil and no error. A
// fragment that does not continue the frame in progress returns
// ErrFragmentLost and the partial frame is dropped. The result may alias
// packet.
func (d *Depacketizer) Unmarshal(packet []byte) ([]byte, error) {
	if len(packet) <= PayloadHeaderSize {
		return nil, ErrShortPacket
	}
	h := ParsePayloadHeader(packet[0])
	body := packet[PayloadHeaderSize:]

	if !h.Fragmented {
		d.Reset()
		return body, nil
	}

	switch {
	case h.Start:
		d.Reset()
		if h.Frames == 0 {
			return nil, ErrFragmentLost
		}
		d.partial = append(d.partial[:0], body...)
		d.next = h.Frames
		d.active = true
	case !d.active || h.Frames != d.next:
		d.Reset()
		return nil, ErrFragmentLost
	default:
		d.partial = append(d.partial, body...)
	}

	d.next--
	if d.next == 0 || h.Last {
		if d.next != 0 || !h.Last {
			d.Reset()
			return nil, ErrFragmentLost
		}
		frame := d.partial
		d.partial, d.active = nil, false
		return frame, nil
	}
	return nil, nil
}

// IsPartitionHead reports whether payload starts a frame.
func (d *Depacketizer) IsPartitionHead(payload []byte) bool {
	if len(payload) < PayloadHeaderSize {
		return false
	}
	h := ParsePayloadHeader(payload[0])
	return !h.Fragmented || h.Start
}

// IsPartitionTail reports whether payload ends a frame.
func (d *Depacketizer) IsPartitionTail(_ bool, payload []byte) bool {
	if len(payload) < PayloadHeaderSize {
		return false
	}
	h := ParsePayloadHeader(payload[0])
	return !h.Fragmented || h.Last
}

// Reset drops a partially assembled frame.
func (d *Depacketizer) Reset() {
	if d.active {
		d.dropped++
	}
	d.partial = d.partial[:0]
	d.next = 0
	d.active = false
}

// Dropped returns the number of partial frames discarded so far.
func (d *Depacketizer) Dropped() int {
	return d.dropped
}
