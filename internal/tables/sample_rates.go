package tables

// SampleRates maps the 2-bit sampling frequency field to a rate in Hz.
var SampleRates = [4]uint32{16000, 32000, 44100, 48000}

// GetSampleRate returns the sample rate for a frequency index.
// Returns 0 for invalid indices (>= 4).
func GetSampleRate(index uint8) uint32 {
	if index >= 4 {
		return 0
	}
	return SampleRates[index]
}

// GetFrequencyIndex returns the frequency index for an exact sample rate.
// The second result is false if the rate cannot be signalled in an SBC header.
func GetFrequencyIndex(sampleRate uint32) (uint8, bool) {
	for i, r := range SampleRates {
		if r == sampleRate {
			return uint8(i), true
		}
	}
	return 0, false
}
