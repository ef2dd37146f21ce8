// Package sbc provides a pure Go SBC (Sub-Band Codec) decoder.
package sbc

import "github.com/llehouerou/go-sbc/internal/tables"

// Sync words.
const (
	SyncSBC  = 0x9C // A2DP SBC frame
	SyncMSBC = 0xAD // Wide-band speech (mSBC) frame
)

// Frame limits.
const (
	HeaderSize      = 3 // Sync word, parameter byte, bitpool
	MaxChannels     = 2
	MaxSubbands     = 8
	MaxBlocks       = 16
	MaxFrameSamples = MaxBlocks * MaxSubbands * MaxChannels
)

// Frequency is the 2-bit sampling frequency field.
type Frequency uint8

// Sampling frequencies.
const (
	Freq16000 Frequency = 0
	Freq32000 Frequency = 1
	Freq44100 Frequency = 2
	Freq48000 Frequency = 3
)

// SampleRate returns the frequency in Hz.
func (f Frequency) SampleRate() int {
	return int(tables.GetSampleRate(uint8(f)))
}

func (f Frequency) String() string {
	switch f {
	case Freq16000:
		return "16kHz"
	case Freq32000:
		return "32kHz"
	case Freq44100:
		return "44.1kHz"
	case Freq48000:
		return "48kHz"
	}
	return "unknown"
}

// FrequencyForRate returns the field value for an exact sample rate.
func FrequencyForRate(hz int) (Frequency, bool) {
	if hz < 0 {
		return 0, false
	}
	idx, ok := tables.GetFrequencyIndex(uint32(hz))
	return Frequency(idx), ok
}

// Blocks is the 2-bit block count field.
type Blocks uint8

// Block counts.
const (
	Blocks4  Blocks = 0
	Blocks8  Blocks = 1
	Blocks12 Blocks = 2
	Blocks16 Blocks = 3
)

// Count returns the number of blocks per frame (4, 8, 12 or 16).
func (b Blocks) Count() int {
	return int(b&3+1) * 4
}

func (b Blocks) String() string {
	switch b {
	case Blocks4:
		return "4"
	case Blocks8:
		return "8"
	case Blocks12:
		return "12"
	case Blocks16:
		return "16"
	}
	return "unknown"
}

// ChannelMode is the 2-bit channel mode field.
type ChannelMode uint8

// Channel modes.
const (
	Mono        ChannelMode = 0
	DualChannel ChannelMode = 1
	Stereo      ChannelMode = 2
	JointStereo ChannelMode = 3
)

// Channels returns 1 for Mono and 2 otherwise.
func (m ChannelMode) Channels() int {
	if m == Mono {
		return 1
	}
	return 2
}

func (m ChannelMode) String() string {
	switch m {
	case Mono:
		return "mono"
	case DualChannel:
		return "dual-channel"
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint-stereo"
	}
	return "unknown"
}

// AllocationMethod is the 1-bit allocation method field.
type AllocationMethod uint8

// Allocation methods.
const (
	Loudness AllocationMethod = 0
	SNR      AllocationMethod = 1
)

func (a AllocationMethod) String() string {
	switch a {
	case Loudness:
		return "loudness"
	case SNR:
		return "snr"
	}
	return "unknown"
}

// Subbands is the 1-bit sub-band count field.
type Subbands uint8

// Sub-band counts.
const (
	Subbands4 Subbands = 0
	Subbands8 Subbands = 1
)

// Count returns 4 or 8.
func (s Subbands) Count() int {
	if s&1 == 0 {
		return 4
	}
	return 8
}

func (s Subbands) String() string {
	switch s {
	case Subbands4:
		return "4"
	case Subbands8:
		return "8"
	}
	return "unknown"
}
