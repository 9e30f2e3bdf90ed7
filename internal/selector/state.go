package selector

import "errors"

// Item is one selectable topic row. Group is the 1-based recording group
// of a checked item; it is always 0 while the item is unchecked.
type Item struct {
	Label   string
	Checked bool
	Group   int
}

// Selection is one confirmed pick: a topic label and its recording group.
type Selection struct {
	Label      string
	GroupIndex int
}

// State is the selector's entire mutable state. It is owned by the single
// control flow driving the event loop; every transition below keeps the
// invariants: 0 <= Cursor < len(Items), Top <= Cursor < Top+Height, and
// the checked items' groups form a contiguous {1..K}.
type State struct {
	Items  []Item
	Cursor int
	Top    int
	Height int
}

// NewState builds the initial state: cursor at the top, viewport at the
// top, items in discovery order. seed pre-checks labels with their cached
// group; groups are compacted so a gappy seed still satisfies the
// invariant.
func NewState(labels []string, seed map[string]int) (*State, error) {
	if len(labels) == 0 {
		return nil, errors.New("item list cannot be empty")
	}
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Label: label}
		if g, ok := seed[label]; ok {
			if g < 1 {
				g = 1
			}
			items[i].Checked = true
			items[i].Group = g
		}
	}
	Compact(items)
	return &State{Items: items, Height: len(items)}, nil
}

// MoveCursor moves the cursor by delta, clamped to the item range. When
// the cursor would leave the viewport, the viewport shifts just far enough
// to keep it visible — for single steps that is exactly one row.
func (s *State) MoveCursor(delta int) {
	c := s.Cursor + delta
	if c < 0 {
		c = 0
	}
	if c > len(s.Items)-1 {
		c = len(s.Items) - 1
	}
	s.Cursor = c
	if s.Cursor < s.Top {
		s.Top = s.Cursor
	} else if s.Cursor >= s.Top+s.Height {
		s.Top = s.Cursor - s.Height + 1
	}
}

// Toggle flips the checked state of the item at idx. Newly checked items
// default to group 1; unchecking clears the group. Groups are compacted
// afterwards so the remaining checked items stay contiguous.
func (s *State) Toggle(idx int) {
	if idx < 0 || idx >= len(s.Items) {
		return
	}
	it := &s.Items[idx]
	it.Checked = !it.Checked
	if it.Checked {
		if it.Group == 0 {
			it.Group = 1
		}
	} else {
		it.Group = 0
	}
	Compact(s.Items)
}

// AdjustGroup moves the item at idx up or down one group. It is a no-op
// for unchecked items, below group 1, and above the number of checked
// items.
func (s *State) AdjustGroup(idx, delta int) {
	if idx < 0 || idx >= len(s.Items) {
		return
	}
	it := &s.Items[idx]
	if !it.Checked {
		return
	}
	if delta < 0 && it.Group <= 1 {
		return
	}
	if delta > 0 && it.Group >= s.CheckedCount() {
		return
	}
	it.Group += delta
	Compact(s.Items)
}

// Resize sets a new viewport height and shifts the viewport as little as
// needed to keep the cursor visible.
func (s *State) Resize(height int) {
	if height < 1 {
		height = 1
	}
	if height > len(s.Items) {
		height = len(s.Items)
	}
	s.Height = height
	if s.Cursor >= s.Top+s.Height {
		s.Top = s.Cursor - s.Height + 1
	}
	if maxTop := len(s.Items) - s.Height; s.Top > maxTop {
		s.Top = maxTop
	}
	if s.Top < 0 {
		s.Top = 0
	}
	if s.Cursor < s.Top {
		s.Top = s.Cursor
	}
}

// CheckedCount returns the number of checked items, which by the
// compaction invariant equals the highest group index in use.
func (s *State) CheckedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Checked {
			n++
		}
	}
	return n
}

// Finish returns the confirmed selections in original item order and
// resets the state to empty so the selector can be reused.
func (s *State) Finish() []Selection {
	var sels []Selection
	for _, it := range s.Items {
		if it.Checked {
			sels = append(sels, Selection{Label: it.Label, GroupIndex: it.Group})
		}
	}
	s.Cursor = 0
	s.Top = 0
	for i := range s.Items {
		s.Items[i].Checked = false
		s.Items[i].Group = 0
	}
	return sels
}
