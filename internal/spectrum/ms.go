package spectrum

// JointStereo undoes mid/side coding in place: L = M + S, R = M - S.
//
// joint holds one flag per sub-band as read from the frame, the first
// sub-band in the most significant of the subbands low bits. Sub-bands whose
// flag is clear are left untouched.
func JointStereo(left, right []int32, joint uint8, subbands int) {
	if joint == 0 {
		return
	}
	for sb := 0; sb < subbands; sb++ {
		if !JointUsed(joint, sb, subbands) {
			continue
		}
		m, s := left[sb], right[sb]
		left[sb] = m + s
		right[sb] = m - s
	}
}

// JointUsed reports whether sub-band sb is mid/side coded.
func JointUsed(joint uint8, sb, subbands int) bool {
	return joint&(1<<(subbands-1-sb)) != 0
}
