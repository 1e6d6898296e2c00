package invindex

// InsertLast relocates the final element of occs into its correct
// position among the preceding entries, which must already be sorted in
// non-increasing order of frequency. It returns the ordered sequence of
// midpoints probed by the binary search, nil when the list has a single
// element. The probe sequence is a diagnostic artifact; callers other
// than tests may ignore it.
//
// The search stops at the first entry with a frequency equal to the
// candidate's and places the candidate immediately after it, so an
// existing entry with equal frequency stays ahead of the new one.
func InsertLast(occs PostingList) []int {
	if len(occs) == 1 {
		return nil
	}

	target := occs[len(occs)-1]
	lo, hi := 0, len(occs)-2
	mid := 0
	matched := false
	var probes []int

	for lo <= hi {
		mid = (lo + hi) / 2
		probes = append(probes, mid)
		if target.Frequency == occs[mid].Frequency {
			matched = true
			break
		}
		if target.Frequency < occs[mid].Frequency {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	// On an exact match the candidate lands right after the matched
	// entry; otherwise lo is the insertion point left by the search.
	position := lo
	if matched {
		position = mid + 1
	}

	copy(occs[position+1:], occs[position:len(occs)-1])
	occs[position] = target

	return probes
}
