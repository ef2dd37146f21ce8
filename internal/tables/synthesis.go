package tables

// FilterOrder is the number of history taps per synthesis sub-band.
const FilterOrder = 10

// Cosine modulation coefficients cos(k*pi/16), Q13.
//
// CosPi16[0] is exactly 1.0 and CosPi16[8] is exactly 0.
var CosPi16 = [9]int32{
	8192, // cos(0*pi/16) = 1.00000000
	8035, // cos(1*pi/16) = 0.98078528
	7568, // cos(2*pi/16) = 0.92387953
	6811, // cos(3*pi/16) = 0.83146961
	5793, // cos(4*pi/16) = 0.70710678
	4551, // cos(5*pi/16) = 0.55557023
	3135, // cos(6*pi/16) = 0.38268343
	1598, // cos(7*pi/16) = 0.19509032
	0,    // cos(8*pi/16) = 0.00000000
}

// Named cosine coefficients used by the butterfly stages.
var (
	Cos1000 = CosPi16[0]
	Cos0980 = CosPi16[1]
	Cos0923 = CosPi16[2]
	Cos0831 = CosPi16[3]
	Cos0707 = CosPi16[4]
	Cos0555 = CosPi16[5]
	Cos0382 = CosPi16[6]
	Cos0195 = CosPi16[7]
)

// Proto4 is the 4-band prototype filter, indexed by [tap][sub-band].
//
// Each entry is the A2DP prototype coefficient scaled by -4 in Q15.
var Proto4 = [FilterOrder][4]int32{
	{0, -70, -196, -358},
	{-503, -510, -245, 401},
	{-1430, -2679, -3785, -4220},
	{-3392, -804, 3778, 10177},
	{-17772, -25557, -32327, -36940},
	{-38576, -36940, -32327, -25557},
	{17772, 10177, 3778, -804},
	{-3392, -4220, -3785, -2679},
	{1430, 401, -245, -510},
	{-503, -358, -196, -70},
}

// Proto8 is the 8-band prototype filter, indexed by [tap][sub-band].
//
// Each entry is the A2DP prototype coefficient scaled by -8 in Q15.
var Proto8 = [FilterOrder][8]int32{
	{0, -41, -90, -145, -216, -299, -387, -468},
	{-527, -551, -523, -424, -236, 47, 432, 917},
	{-1484, -2105, -2742, -3342, -3841, -4169, -4252, -4016},
	{-3391, -2322, -767, 1289, 3838, 6845, 10243, 13943},
	{-17826, -21754, -25579, -29150, -32313, -34934, -36898, -38113},
	{-38523, -38113, -36898, -34934, -32313, -29150, -25579, -21754},
	{17826, 13943, 10243, 6845, 3838, 1289, -767, -2322},
	{-3391, -4016, -4252, -4169, -3841, -3342, -2742, -2105},
	{1484, 917, 432, 47, -236, -424, -523, -551},
	{-527, -468, -387, -299, -216, -145, -90, -41},
}
