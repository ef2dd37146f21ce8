package allocation

import (
	"math/rand"
	"testing"

	"github.com/llehouerou/go-sbc/internal/tables"
)

func matrix(rows ...[]uint8) *Matrix {
	var m Matrix
	for ch, row := range rows {
		copy(m[ch][:], row)
	}
	return &m
}

func TestBitneed_SNR(t *testing.T) {
	for sf := uint8(0); sf < 16; sf++ {
		if got := Bitneed(SNR, sf, -4); got != int(sf) {
			t.Errorf("Bitneed(SNR, %d) = %d, want %d", sf, got, sf)
		}
	}
}

func TestBitneed_Loudness(t *testing.T) {
	tests := []struct {
		sf     uint8
		offset int8
		want   int
	}{
		{10, -1, 5}, // 11 halved, truncated
		{9, 0, 4},   // 9 halved
		{2, 0, 1},   // 2 halved
		{1, 0, 0},   // 1 halved truncates to zero
		{0, 0, 0},   // zero kept
		{0, 1, -1},  // negative kept, not halved
		{1, 2, -1},  // negative kept
		{0, 2, -2},  // negative kept
		{15, -4, 9}, // 19 halved
		{15, 2, 6},  // 13 halved
	}
	for _, tt := range tests {
		if got := Bitneed(Loudness, tt.sf, tt.offset); got != tt.want {
			t.Errorf("Bitneed(Loudness, %d, %d) = %d, want %d", tt.sf, tt.offset, got, tt.want)
		}
	}
}

func TestBitneed_LoudnessProperty(t *testing.T) {
	for sf := 0; sf < 16; sf++ {
		for off := -4; off <= 2; off++ {
			diff := sf - off
			want := diff
			if diff > 0 {
				want = diff / 2
			}
			if got := Bitneed(Loudness, uint8(sf), int8(off)); got != want {
				t.Errorf("Bitneed(Loudness, %d, %d) = %d, want %d", sf, off, got, want)
			}
		}
	}
}

func TestCompute_KnownVectors(t *testing.T) {
	tests := []struct {
		name    string
		method  Method
		coupled bool
		freq    int
		bitpool int
		sf      *Matrix
		ch, sb  int
		want    *Matrix
	}{
		{
			name: "mono loudness 16k", method: Loudness, freq: 0, bitpool: 24,
			sf: matrix([]uint8{10, 9, 7, 6}), ch: 1, sb: 4,
			want: matrix([]uint8{8, 6, 5, 5}),
		},
		{
			name: "stereo snr 44.1k", method: SNR, coupled: true, freq: 2, bitpool: 35,
			sf: matrix([]uint8{8, 7, 5, 3}, []uint8{6, 6, 4, 2}), ch: 2, sb: 4,
			want: matrix([]uint8{8, 7, 4, 2}, []uint8{6, 5, 3, 0}),
		},
		{
			name: "joint stereo loudness 8 bands", method: Loudness, coupled: true, freq: 2, bitpool: 53,
			sf: matrix([]uint8{9, 8, 8, 7, 6, 5, 3, 2}, []uint8{7, 7, 6, 6, 4, 3, 2, 1}), ch: 2, sb: 8,
			want: matrix([]uint8{7, 5, 5, 4, 4, 3, 2, 0}, []uint8{6, 4, 4, 4, 3, 2, 0, 0}),
		},
		{
			name: "dual channel snr", method: SNR, freq: 1, bitpool: 20,
			sf: matrix([]uint8{8, 7, 5, 3}, []uint8{2, 2, 1, 0}), ch: 2, sb: 4,
			want: matrix([]uint8{8, 6, 4, 2}, []uint8{6, 6, 5, 3}),
		},
		{
			name: "msbc parameters", method: Loudness, freq: 0, bitpool: 26,
			sf: matrix([]uint8{7, 8, 6, 5, 4, 3, 2, 1}), ch: 1, sb: 8,
			want: matrix([]uint8{6, 6, 4, 3, 3, 2, 2, 0}),
		},
		{
			name: "silent scale factors", method: Loudness, freq: 0, bitpool: 24,
			sf: matrix([]uint8{0, 0, 0, 0}), ch: 1, sb: 4,
			want: matrix([]uint8{6, 6, 6, 6}),
		},
		{
			name: "pool larger than frame", method: SNR, freq: 0, bitpool: 250,
			sf: matrix([]uint8{15, 15, 15, 15}), ch: 1, sb: 4,
			want: matrix([]uint8{16, 16, 16, 16}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Params{
				Method:   tt.method,
				Channels: tt.ch,
				Subbands: tt.sb,
				Coupled:  tt.coupled,
				Bitpool:  tt.bitpool,
				Offsets:  offsets(tt.sb, tt.freq),
			}
			got := Compute(p, tt.sf)
			if got != *tt.want {
				t.Errorf("Compute = %v, want %v", got, *tt.want)
			}
		})
	}
}

func offsets(subbands, freq int) []int8 {
	if subbands == 4 {
		return tables.Offset4[freq][:]
	}
	return tables.Offset8[freq][:]
}

func TestCompute_ZeroBitpool(t *testing.T) {
	p := &Params{Method: SNR, Channels: 1, Subbands: 8, Bitpool: 0}
	got := Compute(p, matrix([]uint8{15, 12, 9, 6, 3, 0, 1, 2}))
	if n := Total(&got, 1, 8); n != 0 {
		t.Errorf("Total with zero bitpool = %d, want 0", n)
	}
}

// Property: within every allocation scope the widths never exceed the pool
// and no cell exceeds MaxBits.
func TestCompute_WithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		ch := 1 + rng.Intn(2)
		sb := 4 + 4*rng.Intn(2)
		coupled := ch == 2 && rng.Intn(2) == 0
		p := &Params{
			Method:   Method(rng.Intn(2)),
			Channels: ch,
			Subbands: sb,
			Coupled:  coupled,
			Bitpool:  rng.Intn(16 * sb * ch),
			Offsets:  offsets(sb, rng.Intn(4)),
		}
		var sf Matrix
		for c := 0; c < ch; c++ {
			for s := 0; s < sb; s++ {
				sf[c][s] = uint8(rng.Intn(16))
			}
		}

		bits := Compute(p, &sf)

		for c := 0; c < MaxChannels; c++ {
			for s := 0; s < MaxSubbands; s++ {
				if bits[c][s] > MaxBits {
					t.Fatalf("case %d: bits[%d][%d] = %d exceeds %d", i, c, s, bits[c][s], MaxBits)
				}
				if (c >= ch || s >= sb) && bits[c][s] != 0 {
					t.Fatalf("case %d: bits[%d][%d] = %d outside configured range", i, c, s, bits[c][s])
				}
			}
		}

		if coupled {
			if n := Total(&bits, ch, sb); n > p.Bitpool+1 {
				t.Fatalf("case %d: coupled total %d exceeds bitpool %d", i, n, p.Bitpool)
			}
			continue
		}
		for c := 0; c < ch; c++ {
			n := 0
			for s := 0; s < sb; s++ {
				n += int(bits[c][s])
			}
			if n > p.Bitpool+1 {
				t.Fatalf("case %d: channel %d total %d exceeds bitpool %d", i, c, n, p.Bitpool)
			}
		}
	}
}

// Mono and dual channel give each channel the full pool independently.
func TestCompute_DualMatchesMono(t *testing.T) {
	left := []uint8{12, 9, 4, 1, 0, 3, 7, 2}
	right := []uint8{3, 3, 8, 15, 6, 2, 0, 1}

	dual := Compute(&Params{Method: Loudness, Channels: 2, Subbands: 8, Bitpool: 30,
		Offsets: offsets(8, 3)}, matrix(left, right))

	for ch, row := range [][]uint8{left, right} {
		mono := Compute(&Params{Method: Loudness, Channels: 1, Subbands: 8, Bitpool: 30,
			Offsets: offsets(8, 3)}, matrix(row))
		if mono[0] != dual[ch] {
			t.Errorf("channel %d: dual = %v, mono = %v", ch, dual[ch], mono[0])
		}
	}
}
