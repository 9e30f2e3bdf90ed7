package selector

import "sort"

// Compact renumbers the group indices of checked items so the distinct
// values form exactly {1..K} for K checked groups, preserving their
// relative order. Unchecked items are forced back to no group. Running it
// on an already-contiguous assignment changes nothing.
func Compact(items []Item) {
	seen := make(map[int]bool)
	var groups []int
	for _, it := range items {
		if it.Checked && it.Group > 0 && !seen[it.Group] {
			seen[it.Group] = true
			groups = append(groups, it.Group)
		}
	}
	sort.Ints(groups)

	rank := make(map[int]int, len(groups))
	for i, g := range groups {
		rank[g] = i + 1
	}

	for i := range items {
		if items[i].Checked {
			items[i].Group = rank[items[i].Group]
		} else {
			items[i].Group = 0
		}
	}
}
