package lnp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveUp(t *testing.T) {
	tests := []struct {
		name      string
		list      []string
		selection []int
		wantList  []string
		wantSel   []int
	}{
		{
			"single",
			[]string{"a", "b", "c"}, []int{1},
			[]string{"b", "a", "c"}, []int{0},
		},
		{
			"top stays",
			[]string{"a", "b", "c"}, []int{0},
			[]string{"a", "b", "c"}, []int{0},
		},
		{
			"block moves together",
			[]string{"a", "b", "c", "d"}, []int{1, 2},
			[]string{"b", "c", "a", "d"}, []int{0, 1},
		},
		{
			"block at top stays",
			[]string{"a", "b", "c", "d"}, []int{0, 1},
			[]string{"a", "b", "c", "d"}, []int{0, 1},
		},
		{
			"disjoint",
			[]string{"a", "b", "c", "d"}, []int{1, 3},
			[]string{"b", "a", "d", "c"}, []int{0, 2},
		},
		{
			"empty selection",
			[]string{"a", "b"}, nil,
			[]string{"a", "b"}, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, sel := MoveUp(tt.list, tt.selection)
			assert.Equal(t, tt.wantList, list)
			assert.Equal(t, tt.wantSel, sel)
		})
	}
}

func TestMoveDown(t *testing.T) {
	tests := []struct {
		name      string
		list      []string
		selection []int
		wantList  []string
		wantSel   []int
	}{
		{
			"single",
			[]string{"a", "b", "c"}, []int{1},
			[]string{"a", "c", "b"}, []int{2},
		},
		{
			"bottom stays",
			[]string{"a", "b", "c"}, []int{2},
			[]string{"a", "b", "c"}, []int{2},
		},
		{
			"block moves together",
			[]string{"a", "b", "c", "d"}, []int{1, 2},
			[]string{"a", "d", "b", "c"}, []int{2, 3},
		},
		{
			"block at bottom stays",
			[]string{"a", "b", "c", "d"}, []int{2, 3},
			[]string{"a", "b", "c", "d"}, []int{2, 3},
		},
		{
			"empty selection",
			[]string{"a", "b"}, nil,
			[]string{"a", "b"}, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, sel := MoveDown(tt.list, tt.selection)
			assert.Equal(t, tt.wantList, list)
			assert.Equal(t, tt.wantSel, sel)
		})
	}
}

func TestMoveRoundTrip(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}

	down, sel := MoveDown(list, []int{1, 2})
	up, sel := MoveUp(down, sel)
	assert.Equal(t, list, up)
	assert.Equal(t, []int{1, 2}, sel)
}

func TestMergeStatusString(t *testing.T) {
	assert.Equal(t, "merged", MergeClean.String())
	assert.Equal(t, "not merged", MergeNone.String())
}
