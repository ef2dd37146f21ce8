// Package allocation implements SBC adaptive bit allocation.
//
// Given the scale factors of a frame, the allocation method and the bitpool,
// it derives how many bits each sub-band sample is coded with. The result
// must match the encoder bit for bit, so every rounding and tie-break rule of
// the A2DP reference algorithm is kept as is.
package allocation

// Limits for the allocation matrices.
const (
	MaxChannels = 2
	MaxSubbands = 8
	MaxBits     = 16 // Widest codeword
)

// Method selects how bitneed is derived from scale factors.
type Method uint8

// Allocation methods.
const (
	Loudness Method = 0
	SNR      Method = 1
)

// Params describes one allocation run.
type Params struct {
	Method   Method
	Channels int // 1 or 2
	Subbands int // 4 or 8

	// Coupled is true for stereo and joint stereo: both channels share one
	// bitslice search and one bitpool. Mono and dual channel allocate each
	// channel independently against its own copy of the bitpool.
	Coupled bool

	Bitpool int

	// Offsets holds the loudness offset of each sub-band for the frame's
	// sampling frequency. Unused by SNR.
	Offsets []int8
}

// Matrix holds one value per channel and sub-band.
type Matrix [MaxChannels][MaxSubbands]uint8

// Bitneed returns the allocation priority of a sub-band.
//
// SNR uses the scale factor directly. Loudness subtracts the sub-band offset
// and halves positive results, truncating; zero and negative values are kept.
func Bitneed(method Method, scaleFactor uint8, offset int8) int {
	if method == SNR {
		return int(scaleFactor)
	}
	loudness := int(scaleFactor) - int(offset)
	if loudness > 0 {
		return loudness / 2
	}
	return loudness
}

// Compute returns the bit width of every sub-band sample.
// Entries beyond p.Channels and p.Subbands are zero.
func Compute(p *Params, scaleFactors *Matrix) Matrix {
	var need [MaxChannels][MaxSubbands]int
	for ch := 0; ch < p.Channels; ch++ {
		for sb := 0; sb < p.Subbands; sb++ {
			var off int8
			if p.Method == Loudness {
				off = p.Offsets[sb]
			}
			need[ch][sb] = Bitneed(p.Method, scaleFactors[ch][sb], off)
		}
	}

	var bits Matrix
	if p.Coupled {
		allocate(p, &need, &bits, 0, p.Channels)
		return bits
	}
	for ch := 0; ch < p.Channels; ch++ {
		allocate(p, &need, &bits, ch, ch+1)
	}
	return bits
}

// allocate distributes p.Bitpool over channels [from, to).
//
// The top-up passes walk sub-band major with the channel as the inner loop.
// With a single channel in scope this is the same as walking sub-bands in order.
func allocate(p *Params, need *[MaxChannels][MaxSubbands]int, bits *Matrix, from, to int) {
	bitpool := p.Bitpool

	maxNeed, minNeed := need[from][0], need[from][0]
	for ch := from; ch < to; ch++ {
		for sb := 0; sb < p.Subbands; sb++ {
			maxNeed = max(maxNeed, need[ch][sb])
			minNeed = min(minNeed, need[ch][sb])
		}
	}

	// Lower the slice until the bits it would hand out cover the pool.
	bitcount, slicecount := 0, 0
	bitslice := maxNeed + 1
	for {
		bitslice--
		bitcount += slicecount
		slicecount = 0
		for ch := from; ch < to; ch++ {
			for sb := 0; sb < p.Subbands; sb++ {
				slicecount += sliceBits(need[ch][sb], bitslice)
			}
		}
		if bitcount+slicecount >= bitpool {
			break
		}
		// Every sub-band is saturated at MaxBits; a larger pool cannot be spent.
		if bitslice+MaxBits <= minNeed {
			break
		}
	}

	for ch := from; ch < to; ch++ {
		for sb := 0; sb < p.Subbands; sb++ {
			if need[ch][sb] < bitslice+2 {
				bits[ch][sb] = 0
			} else {
				bits[ch][sb] = uint8(min(need[ch][sb]-bitslice, MaxBits))
			}
		}
	}

	for sb := 0; sb < p.Subbands && bitcount < bitpool; sb++ {
		for ch := from; ch < to && bitcount < bitpool; ch++ {
			switch {
			case bits[ch][sb] >= 2 && bits[ch][sb] < MaxBits:
				bits[ch][sb]++
				bitcount++
			case need[ch][sb] == bitslice+1 && bitpool > bitcount+1:
				bits[ch][sb] = 2
				bitcount += 2
			}
		}
	}

	for sb := 0; sb < p.Subbands && bitcount < bitpool; sb++ {
		for ch := from; ch < to && bitcount < bitpool; ch++ {
			if bits[ch][sb] < MaxBits {
				bits[ch][sb]++
				bitcount++
			}
		}
	}
}

// sliceBits is the number of bits a sub-band adds when the slice drops to bitslice.
func sliceBits(need, bitslice int) int {
	switch {
	case need == bitslice+1:
		return 2
	case need > bitslice+1 && need < bitslice+16:
		return 1
	default:
		return 0
	}
}

// Total returns the sum of all widths in bits for the given dimensions.
func Total(bits *Matrix, channels, subbands int) int {
	n := 0
	for ch := 0; ch < channels; ch++ {
		for sb := 0; sb < subbands; sb++ {
			n += int(bits[ch][sb])
		}
	}
	return n
}
