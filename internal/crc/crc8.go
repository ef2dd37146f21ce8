// Package crc implements the bit-granular CRC-8 used to protect SBC frame headers.
package crc

// Poly is the CRC-8 generator polynomial x^8 + x^4 + x^3 + x^2 + 1.
const Poly = 0x1D

// Init is the initial CRC value for SBC frames.
const Init uint8 = 0x0F

var table [256]uint8

func init() {
	for i := range table {
		c := uint8(i)
		for j := 0; j < 8; j++ {
			if c&0x80 != 0 {
				c = c<<1 ^ Poly
			} else {
				c <<= 1
			}
		}
		table[i] = c
	}
}

// Table returns a copy of the byte-wise lookup table.
func Table() [256]uint8 {
	return table
}

// Checksum folds the first bits bits of data into crc and returns the result.
//
// Whole bytes go through the lookup table. When bits is not a multiple of 8,
// only the high bits%8 bits of the following byte are folded, one bit at a time.
// It panics if data holds fewer than bits bits.
func Checksum(crc uint8, data []byte, bits int) uint8 {
	if bits < 0 || len(data)*8 < bits {
		panic("crc: bit length exceeds data")
	}

	whole := bits / 8
	for _, b := range data[:whole] {
		crc = table[crc^b]
	}

	tail := uint(bits % 8)
	if tail == 0 {
		return crc
	}
	crc ^= data[whole] & (0xFF << (8 - tail))
	for i := uint(0); i < tail; i++ {
		if crc&0x80 != 0 {
			crc = crc<<1 ^ Poly
		} else {
			crc <<= 1
		}
	}
	return crc
}
