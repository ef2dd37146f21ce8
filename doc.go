// Package sbc provides a pure Go decoder for SBC (Low Complexity Subband
// Coding) and mSBC audio, as carried over Bluetooth A2DP and HFP.
//
// The decoder uses only integer arithmetic and produces 16-bit signed PCM.
// It needs no CGO and allocates nothing per frame.
//
// # Basic Usage
//
// To decode a stream of concatenated frames:
//
//	dec := sbc.NewDecoder(r, nil)
//	pcm := make([]int16, sbc.MaxFrameSamples)
//
//	for {
//	    info, err := dec.Decode(pcm)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // pcm[:info.Samples] holds interleaved samples
//	}
//
// NewReader wraps a Decoder as an io.Reader of little-endian PCM bytes.
//
// # API Variants
//
// The package provides two levels of API:
//
// Stream API:
//   - Decoder: finds frames, switches filter state on configuration changes,
//     optionally resynchronizes after garbage or checksum failures
//   - Reader: io.Reader over the decoded PCM
//
// Frame API:
//   - DecodeHeader, ParseHeader: read the three header bytes
//   - NewFrameDecoder: checks the CRC-8 and reads the side information
//   - FrameDecoder.Next, FrameDecoder.All: pull one block at a time
//   - FilterState: synthesis history for one channel/sub-band configuration
//
// # Supported Formats
//
// SBC: 16, 32, 44.1 and 48 kHz; 4, 8, 12 or 16 blocks; 4 or 8 sub-bands;
// mono, dual channel, stereo and joint stereo; loudness and SNR allocation.
//
// mSBC: 16 kHz mono wideband speech frames with fixed parameters.
//
// Encoding is not supported.
//
// # Thread Safety
//
// Decoder, FrameDecoder and FilterState instances are NOT safe for
// concurrent use. Each goroutine should have its own. Header values are
// immutable and may be shared freely.
//
// # Reference
//
// Bluetooth A2DP specification, appendix B (SBC), and HFP appendix A (mSBC).
package sbc
