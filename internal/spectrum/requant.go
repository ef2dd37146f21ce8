package spectrum

// ExtraBits is the number of fractional bits kept beyond the scale factor.
const ExtraBits = 2

// Dequantize reconstructs a sub-band sample from a width-bit codeword.
//
// The codeword is mapped to the centre of its quantization step in the range
// [-2^(sf+1), 2^(sf+1)) and scaled by 2^ExtraBits:
//
//	((2*code + 1) << shift) / (2^width - 1) - (1 << shift),  shift = sf + 1 + ExtraBits
//
// A width of zero means the sub-band carries no bits and decodes to silence.
func Dequantize(code uint16, width, scaleFactor uint8) int32 {
	if width == 0 {
		return 0
	}
	shift := uint(scaleFactor) + 1 + ExtraBits
	levels := int64(1)<<width - 1
	v := (int64(code)<<1 | 1) << shift
	return int32(v/levels - int64(1)<<shift)
}
