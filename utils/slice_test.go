package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByKeepsInputOrderWithinGroups(t *testing.T) {
	type row struct {
		owner  int
		target string
	}
	rows := []row{{1, "a"}, {2, "b"}, {1, "c"}}

	groups := GroupBy(rows, func(r row) int { return r.owner })

	assert.Equal(t, []row{{1, "a"}, {1, "c"}}, groups[1])
	assert.Equal(t, []row{{2, "b"}}, groups[2])
}

func TestIndexByLastWins(t *testing.T) {
	index := IndexBy([]string{"ab", "ac", "b"}, func(s string) byte { return s[0] })

	assert.Equal(t, "ac", index['a'])
	assert.Equal(t, "b", index['b'])
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty([]int{}))
	assert.Nil(t, NilIfEmpty[int](nil))
	assert.Equal(t, []int{1}, NilIfEmpty([]int{1}))
}
