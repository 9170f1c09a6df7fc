package messagequeue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPop(t *testing.T, h *messageHeap) MessageJob {
	t.Helper()

	job, ok := h.pop()
	require.True(t, ok, "expected job, heap is empty")

	return job
}

func TestHeap_PushPopOrdering(t *testing.T) {
	t.Parallel()

	var h messageHeap

	h.push(MessageJob{ID: 1, Priority: 5})
	h.push(MessageJob{ID: 2, Priority: 1})
	h.push(MessageJob{ID: 3, Priority: 5})
	h.push(MessageJob{ID: 4, Priority: 3})

	var got []uint64
	for h.Len() > 0 {
		got = append(got, mustPop(t, &h).ID)
	}

	assert.Equal(t, []uint64{2, 4, 1, 3}, got)

	_, ok := h.pop()
	assert.False(t, ok)
}

func TestHeap_Delete(t *testing.T) {
	t.Parallel()

	var h messageHeap

	for id := uint64(1); id <= 4; id++ {
		h.push(MessageJob{ID: id, Priority: uint16(10 - id)})
	}

	assert.True(t, h.delete(2))
	assert.False(t, h.delete(2))
	assert.False(t, h.delete(42))

	assert.Equal(t, uint64(4), mustPop(t, &h).ID)
	assert.Equal(t, uint64(3), mustPop(t, &h).ID)
	assert.Equal(t, uint64(1), mustPop(t, &h).ID)
	assert.Equal(t, 0, h.Len())
}
