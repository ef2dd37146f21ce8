// Package filterbank implements the SBC synthesis filter bank.
//
// The bank is a cosine-modulated polyphase filter with FilterOrder taps of
// history per sub-band. The modulation matrix is reflective, so only half of
// its rows are computed: the butterflies below produce M intermediate values
// per block (M = 4 or 8) and the convolution reads the mirrored rows back as
// sign flips of the stored ones.
package filterbank

import "github.com/llehouerou/go-sbc/internal/tables"

// Order is the number of history taps per sub-band.
const Order = tables.FilterOrder

// History is the circular tap buffer of one intermediate value.
type History [Order]int32

// Bank is one sub-band configuration of the synthesis filter.
type Bank interface {
	// Subbands returns the number of sub-bands (4 or 8).
	Subbands() int

	// Offsets returns the loudness allocation offsets for a frequency index.
	Offsets(freq uint8) []int8

	// Synthesize turns one block of sub-band samples into PCM.
	//
	// v holds Subbands() histories. The intermediate values of this block are
	// stored at index step, then the taps are convolved walking backwards from
	// step. The caller advances step after every block.
	Synthesize(step int, v []History, in []int32, out []int16)
}

// Band4 and Band8 are the two filter bank variants.
var (
	Band4 Bank = band4{}
	Band8 Bank = band8{}
)

// ForSubbands returns the bank for a sub-band count, or nil if n is not 4 or 8.
func ForSubbands(n int) Bank {
	switch n {
	case 4:
		return Band4
	case 8:
		return Band8
	}
	return nil
}

// NextStep advances a history cursor, wrapping after Order.
func NextStep(step int) int {
	if step+1 == Order {
		return 0
	}
	return step + 1
}

// prevTap steps one slot back in a circular history.
func prevTap(i int) int {
	if i == 0 {
		return Order - 1
	}
	return i - 1
}

// saturate16 clamps a sample to the int16 range.
func saturate16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
