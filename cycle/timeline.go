package cycle

import (
	"sort"
	"time"
)

// Entry is one classified period.
type Entry struct {
	Time  time.Time
	Label Label
}

// Transition marks a label change between consecutive periods.
type Transition struct {
	Time time.Time
	From Label
	To   Label
}

// Timeline is the classified label sequence. Entries are time-ordered
// and gap-free from the first classifiable period onward.
type Timeline struct {
	Entries []Entry

	// CarriedForward counts periods that inherited the previous label;
	// SkippedLeading counts unclassifiable periods before the first match.
	CarriedForward int
	SkippedLeading int
}

// LabelAt returns the label in effect at t: the latest entry at or
// before t. ok is false before the first entry.
func (tl *Timeline) LabelAt(t time.Time) (Label, bool) {
	n := len(tl.Entries)
	// First entry strictly after t.
	i := sort.Search(n, func(j int) bool {
		return tl.Entries[j].Time.After(t)
	})
	if i == 0 {
		return None, false
	}
	return tl.Entries[i-1].Label, true
}

// Current returns the label of the most recent period.
func (tl *Timeline) Current() (Label, bool) {
	if len(tl.Entries) == 0 {
		return None, false
	}
	return tl.Entries[len(tl.Entries)-1].Label, true
}

// Transitions derives the label-change events.
func (tl *Timeline) Transitions() []Transition {
	var out []Transition
	for i := 1; i < len(tl.Entries); i++ {
		if tl.Entries[i].Label != tl.Entries[i-1].Label {
			out = append(out, Transition{
				Time: tl.Entries[i].Time,
				From: tl.Entries[i-1].Label,
				To:   tl.Entries[i].Label,
			})
		}
	}
	return out
}

// Distribution counts periods per label.
func (tl *Timeline) Distribution() map[Label]int {
	out := make(map[Label]int, 4)
	for _, e := range tl.Entries {
		out[e.Label]++
	}
	return out
}
