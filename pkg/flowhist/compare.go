package flowhist

// lte reports whether a is chronologically at or before b. Both a and b
// precede now by at most one 2^32 wraparound. When either value sits
// numerically above now it comes from before the wrap; the values at or
// below now have wrapped and are really later, so they get promoted past
// the boundary before ordering.
func lte(now, a, b uint32) bool {
	if a <= now && b <= now {
		return a <= b
	}

	aAdj := uint64(a)
	if a <= now {
		aAdj += 1 << 32
	}
	bAdj := uint64(b)
	if b <= now {
		bAdj += 1 << 32
	}

	return aAdj <= bAdj
}
