package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, Chunks([]int{1, 2, 3}, 0))
	assert.Nil(t, Chunks([]int{}, 3))
}

func TestValuesFuncAndUnique(t *testing.T) {
	doubled := ValuesFunc([]int{1, 2, 3, 4}, func(v int) int { return v * 2 }, func(v int) bool { return v%2 == 1 })
	assert.Equal(t, []int{2, 6}, doubled)
	assert.Equal(t, []string{"b", "a", "c"}, UniqueFunc([]string{"b", "a", "b", "c", "a"}, func(v string) string { return v }))
}

func TestTernaries(t *testing.T) {
	assert.Equal(t, "https", TT(true, "https", "http"))
	assert.Equal(t, 7, TTM[int](false, func() int { return 3 }, 7))
	assert.Equal(t, 3, TTM[int](true, func() int { return 3 }, 7))
	assert.Equal(t, 5, *NewPtr(5))
}
