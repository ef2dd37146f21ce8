package tables

// Loudness allocation offsets, indexed by [frequency][sub-band].
var (
	Offset4 = [4][4]int8{
		{-1, 0, 0, 0}, // 16000
		{-2, 0, 0, 1}, // 32000
		{-2, 0, 0, 1}, // 44100
		{-2, 0, 0, 1}, // 48000
	}

	Offset8 = [4][8]int8{
		{-2, 0, 0, 0, 0, 0, 0, 1}, // 16000
		{-3, 0, 0, 0, 0, 0, 1, 2}, // 32000
		{-4, 0, 0, 0, 0, 0, 1, 2}, // 44100
		{-4, 0, 0, 0, 0, 0, 1, 2}, // 48000
	}
)
