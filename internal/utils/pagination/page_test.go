package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, 1, 2))
	assert.Equal(t, []int{3, 4}, Slice(items, 2, 2))
	assert.Equal(t, []int{5}, Slice(items, 3, 2))
	assert.Empty(t, Slice(items, 4, 2))  // past the end
	assert.Empty(t, Slice(items, 99, 2)) // far past the end
	assert.Empty(t, Slice([]int{}, 1, 2))
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(1, 2, 5))
	assert.True(t, HasMore(2, 2, 5))
	assert.False(t, HasMore(3, 2, 5))
	assert.False(t, HasMore(1, 10, 5))
	assert.False(t, HasMore(3, 2, 6)) // page*size == total is not more
}
