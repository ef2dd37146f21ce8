package filterbank

import "github.com/llehouerou/go-sbc/internal/tables"

type band8 struct{}

func (band8) Subbands() int { return 8 }

func (band8) Offsets(freq uint8) []int8 {
	return tables.Offset8[freq&3][:]
}

// Synthesize computes the 8-band synthesis for one block.
//
// Of the 16 modulation rows only eight are distinct:
//
//	rows 0-3   = v0 v1 v2 v3
//	row  4     = 0
//	rows 5-8   = -v3 -v2 -v1 -v0
//	rows 9-12  = v4 v5 v6 v7
//	rows 13-15 = v6 v5 v4
func (band8) Synthesize(step int, v []History, in []int32, out []int16) {
	_ = v[7]
	_ = in[7]
	_ = out[7]

	a07 := in[0] + in[7]
	a16 := in[1] + in[6]
	a25 := in[2] + in[5]
	a34 := in[3] + in[4]
	s07 := in[0] - in[7]
	s16 := in[1] - in[6]
	s25 := in[2] - in[5]
	s34 := in[3] - in[4]

	var (
		c1000 = tables.Cos1000
		c0980 = tables.Cos0980
		c0923 = tables.Cos0923
		c0831 = tables.Cos0831
		c0707 = tables.Cos0707
		c0555 = tables.Cos0555
		c0382 = tables.Cos0382
		c0195 = tables.Cos0195
	)

	v0 := (a07 - a16 - a25 + a34) * c0707
	v1 := s07*c0555 - s16*c0980 + s25*c0195 + s34*c0831
	v2 := (a07-a34)*c0382 + (a25-a16)*c0923
	v3 := s07*c0195 - s16*c0555 + s25*c0831 - s34*c0980
	v4 := -s07*c0831 + s16*c0195 + s25*c0980 + s34*c0555
	v5 := (a34-a07)*c0923 + (a25-a16)*c0382
	v6 := -s07*c0980 - s16*c0831 - s25*c0555 - s34*c0195
	v7 := -(a07 + a16 + a25 + a34) * c1000

	v[0][step] = v0 >> 15
	v[1][step] = v1 >> 15
	v[2][step] = v2 >> 15
	v[3][step] = v3 >> 15
	v[4][step] = v4 >> 15
	v[5][step] = v5 >> 15
	v[6][step] = v6 >> 15
	v[7][step] = v7 >> 15

	var sum [8]int32
	p := &tables.Proto8
	i := step
	for f := 0; f < Order; f++ {
		if f&1 == 0 {
			sum[0] += v[0][i] * p[f][0]
			sum[1] += v[1][i] * p[f][1]
			sum[2] += v[2][i] * p[f][2]
			sum[3] += v[3][i] * p[f][3]
			sum[5] -= v[3][i] * p[f][5]
			sum[6] -= v[2][i] * p[f][6]
			sum[7] -= v[1][i] * p[f][7]
		} else {
			sum[0] -= v[0][i] * p[f][0]
			sum[1] += v[4][i] * p[f][1]
			sum[2] += v[5][i] * p[f][2]
			sum[3] += v[6][i] * p[f][3]
			sum[4] += v[7][i] * p[f][4]
			sum[5] += v[6][i] * p[f][5]
			sum[6] += v[5][i] * p[f][6]
			sum[7] += v[4][i] * p[f][7]
		}
		i = prevTap(i)
	}

	for sb := range sum {
		out[sb] = saturate16(sum[sb] >> 15)
	}
}
