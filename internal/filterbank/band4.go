package filterbank

import "github.com/llehouerou/go-sbc/internal/tables"

type band4 struct{}

func (band4) Subbands() int { return 4 }

func (band4) Offsets(freq uint8) []int8 {
	return tables.Offset4[freq&3][:]
}

// Synthesize computes the 4-band synthesis for one block.
//
// Of the 8 modulation rows only four are distinct:
//
//	row 0 = v0, row 1 = v1, row 2 = 0, row 3 = -v1,
//	row 4 = -v0, row 5 = v2, row 6 = v3, row 7 = v2
func (band4) Synthesize(step int, v []History, in []int32, out []int16) {
	_ = v[3]
	_ = in[3]
	_ = out[3]

	a03 := in[0] + in[3]
	s03 := in[0] - in[3]
	a12 := in[1] + in[2]
	s12 := in[1] - in[2]

	v0 := (a03 - a12) * tables.Cos0707
	v1 := s03*tables.Cos0382 - s12*tables.Cos0923
	v2 := -(s03*tables.Cos0923 + s12*tables.Cos0382)
	v3 := -((a03 + a12) * tables.Cos1000)

	v[0][step] = v0 >> 15
	v[1][step] = v1 >> 15
	v[2][step] = v2 >> 15
	v[3][step] = v3 >> 15

	var sum [4]int32
	p := &tables.Proto4
	i := step
	for f := 0; f < Order; f++ {
		if f&1 == 0 {
			sum[0] += v[0][i] * p[f][0]
			sum[1] += v[1][i] * p[f][1]
			sum[3] -= v[1][i] * p[f][3]
		} else {
			sum[0] -= v[0][i] * p[f][0]
			sum[1] += v[2][i] * p[f][1]
			sum[2] += v[3][i] * p[f][2]
			sum[3] += v[2][i] * p[f][3]
		}
		i = prevTap(i)
	}

	for sb := range sum {
		out[sb] = saturate16(sum[sb] >> 15)
	}
}
