package flowhist

import "fmt"

// surrounding finds the two adjacent observations straddling target. If the
// target sits at or after the head the pair is synthesized from the head
// itself; anything earlier must fall inside recorded history or the query is
// rejected as too old.
func (b *Buffer) surrounding(now, target uint32, index, cardinality uint16) (beforeOrAt, atOrAfter Observation, err error) {
	beforeOrAt = b.slots[index]

	if lte(now, beforeOrAt.Timestamp, target) {
		if beforeOrAt.Timestamp == target {
			// exact head hit, the right bound is never read
			return beforeOrAt, atOrAfter, nil
		}
		return beforeOrAt, project(beforeOrAt, target), nil
	}

	// oldest live slot; before the first wrap it is slot 0
	beforeOrAt = b.slots[(index+1)%cardinality]
	if !beforeOrAt.Initialized {
		beforeOrAt = b.slots[0]
	}

	if !lte(now, beforeOrAt.Timestamp, target) {
		return Observation{}, Observation{}, fmt.Errorf("%w: oldest %d, target %d", ErrTargetTooOld, beforeOrAt.Timestamp, target)
	}

	return b.search(now, target, index, cardinality)
}

// search runs a binary search over the live window. The window is linearized
// into the unwrapped range [l, r] and every probe projects back with a modulo,
// which keeps the usual midpoint invariants away from the wrap seam. The
// caller has already proven oldest <= target < head, so the loop always
// lands on a bracketing pair.
func (b *Buffer) search(now, target uint32, index, cardinality uint16) (beforeOrAt, atOrAfter Observation, err error) {
	card := int(cardinality)
	l := (int(index) + 1) % card
	r := l + card - 1

	for {
		i := (l + r) / 2

		beforeOrAt = b.slots[i%card]
		if !beforeOrAt.Initialized {
			// grown but unwritten slot, the answer is above it
			l = i + 1
			continue
		}

		atOrAfter = b.slots[(i+1)%card]

		if !lte(now, beforeOrAt.Timestamp, target) {
			r = i - 1
			continue
		}
		if !lte(now, target, atOrAfter.Timestamp) {
			l = i + 1
			continue
		}

		return beforeOrAt, atOrAfter, nil
	}
}
