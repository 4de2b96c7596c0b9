package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueOrdering(t *testing.T) {
	eq := NewEventQueue()
	rng := rand.New(rand.NewSource(1))

	const n = 200
	for i := 0; i < n; i++ {
		eq.Enqueue(&RideEvent{Time: rng.Float64() * 1000})
	}
	assert.Equal(t, n, eq.Len())

	prev := -1.0
	for !eq.IsEmpty() {
		event, err := eq.Dequeue()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, event.Time, prev)
		prev = event.Time
	}
	assert.Equal(t, 0, eq.Len())
}

func TestEventQueueTieBreakIsInsertionOrder(t *testing.T) {
	eq := NewEventQueue()
	for i := 0; i < 10; i++ {
		eq.Enqueue(&RideEvent{Time: 7.5, StopIndex: i})
	}

	for i := 0; i < 10; i++ {
		event, err := eq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, i, event.StopIndex)
	}
}

func TestEventQueueEmptyAccess(t *testing.T) {
	eq := NewEventQueue()

	_, err := eq.Peek()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	_, err = eq.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	assert.True(t, eq.IsEmpty())
	assert.Equal(t, 0, eq.Len())
}

func TestEventQueuePeekDoesNotRemove(t *testing.T) {
	eq := NewEventQueue()
	eq.Enqueue(&RideEvent{Time: 3})
	eq.Enqueue(&RideEvent{Time: 1})

	peeked, err := eq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1.0, peeked.Time)
	assert.Equal(t, 2, eq.Len())

	popped, err := eq.Dequeue()
	require.NoError(t, err)
	assert.Same(t, peeked, popped)
	assert.Equal(t, 1, eq.Len())
}
