package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cloneInts(in []int) []int {
	return append([]int(nil), in...)
}

func TestUpdateCommitKeepsMutation(t *testing.T) {
	current := []int{1, 2, 3}

	u := Begin(current, cloneInts, func(list []int) []int {
		list[0] = 99
		return list
	})

	assert.Equal(t, []int{99, 2, 3}, u.Applied())
	assert.Equal(t, []int{99, 2, 3}, u.Commit())
	assert.Equal(t, []int{1, 2, 3}, current, "the caller's list is never mutated in place")
}

func TestUpdateRevertReturnsSnapshot(t *testing.T) {
	u := Begin([]int{1, 2, 3}, cloneInts, func(list []int) []int {
		list[1] = 0
		return list
	})

	assert.Equal(t, []int{1, 0, 3}, u.Applied())
	assert.Equal(t, []int{1, 2, 3}, u.Revert())
}

func TestUpdateMutateNeverSeesSnapshot(t *testing.T) {
	var seen []int
	u := Begin([]int{7}, cloneInts, func(list []int) []int {
		seen = list
		list[0] = 8
		return list
	})

	// The mutate callback works on its own clone; writing through it must
	// not corrupt the snapshot the rollback depends on.
	seen[0] = 42
	assert.Equal(t, []int{7}, u.Revert())
}
