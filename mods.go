package lnp

import "sort"

// MergeStatus describes how cleanly a mod's raws merged into the
// installed set.
type MergeStatus int

const (
	// MergeClean merged without touching any line another mod changed.
	MergeClean MergeStatus = iota
	// MergeAdjusted merged with minor, non-conflicting adjustments.
	MergeAdjusted
	// MergeConflict overlapped changes from an earlier mod in the order.
	MergeConflict
	// MergeNone has not been merged.
	MergeNone
)

func (s MergeStatus) String() string {
	switch s {
	case MergeClean:
		return "merged"
	case MergeAdjusted:
		return "merged with adjustments"
	case MergeConflict:
		return "merged with conflicts"
	default:
		return "not merged"
	}
}

func selectionSet(selection []int) map[int]bool {
	sel := make(map[int]bool, len(selection))
	for _, i := range selection {
		sel[i] = true
	}
	return sel
}

// MoveUp shifts the selected entries of list one position towards the
// front, keeping a selected block together and stopping at the front of
// the list. It returns the reordered list and the selection's new
// indices.
func MoveUp(list []string, selection []int) ([]string, []int) {
	out := append(list[:0:0], list...)
	if len(selection) == 0 {
		return out, selection
	}
	sel := selectionSet(selection)

	for i := 1; i < len(out); i++ {
		j := i
		for j < len(out) && sel[j] && !sel[i-1] {
			out[j-1], out[j] = out[j], out[j-1]
			j++
		}
	}

	var moved []int
	firstMissed := false
	for i := 0; i < len(out); i++ {
		if !sel[i] {
			firstMissed = true
		} else if firstMissed {
			moved = append(moved, i-1)
		} else {
			moved = append(moved, i)
		}
	}
	return out, moved
}

// MoveDown is the inverse of MoveUp, shifting the selected entries one
// position towards the back of the list.
func MoveDown(list []string, selection []int) ([]string, []int) {
	out := append(list[:0:0], list...)
	if len(selection) == 0 {
		return out, selection
	}
	sel := selectionSet(selection)

	for i := len(out) - 1; i > 0; i-- {
		j := i
		for j > 0 && !sel[i] && sel[j-1] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}

	var moved []int
	firstMissed := false
	for i := len(out); i > 0; i-- {
		if !sel[i-1] {
			firstMissed = true
		} else if firstMissed {
			moved = append(moved, i)
		} else {
			moved = append(moved, i-1)
		}
	}
	sort.Ints(moved)
	return out, moved
}

// MoveModsUp moves the named mods one step earlier in the stored merge
// order.
func (l *LNP) MoveModsUp(names []string) error {
	return l.moveMods(names, MoveUp)
}

// MoveModsDown moves the named mods one step later in the stored merge
// order.
func (l *LNP) MoveModsDown(names []string) error {
	return l.moveMods(names, MoveDown)
}

func (l *LNP) moveMods(names []string, move func([]string, []int) ([]string, []int)) error {
	mods, err := l.db.List()
	if err != nil {
		return err
	}

	list := make([]string, len(mods))
	byName := make(map[string]int, len(mods))
	for i, m := range mods {
		list[i] = m.Name
		byName[m.Name] = i
	}

	var selection []int
	for _, name := range names {
		if i, ok := byName[name]; ok {
			selection = append(selection, i)
		}
	}
	sort.Ints(selection)

	reordered, _ := move(list, selection)
	return l.db.Reorder(reordered)
}
