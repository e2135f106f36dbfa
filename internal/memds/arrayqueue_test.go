package memds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayQueue(t *testing.T) {
	q := NewArrayQueue[int]()
	assert.Zero(t, q.Size())
	assert.True(t, q.Empty())
	assert.Equal(t, []int(nil), q.Values())

	q.Enqueue(3)
	assert.NotZero(t, q.Size())
	assert.False(t, q.Empty())
	assert.Equal(t, []int{3}, q.Values())

	elem, ok := q.Dequeue()
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, 3, elem)
	assert.Zero(t, q.Size())
	assert.True(t, q.Empty())
	assert.Equal(t, []int{}, q.Values())

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestArrayQueueFIFOOrder(t *testing.T) {
	q := NewArrayQueue[string]()
	q.Enqueue("a")
	q.Enqueue("b")

	assert.Equal(t, []string{"a", "b"}, q.Values())

	q.Enqueue("c")

	var dequeued []string
	for !q.Empty() {
		e, _ := q.Dequeue()
		dequeued = append(dequeued, e)
	}
	assert.Equal(t, []string{"a", "b", "c"}, dequeued)
}

func TestArrayQueueClear(t *testing.T) {
	q := NewArrayQueue[*int]()
	one, two := 1, 2
	q.Enqueue(&one)
	q.Enqueue(&two)

	q.Clear()
	assert.True(t, q.Empty())

	q.Enqueue(&two)
	e, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Same(t, &two, e)
}

func TestArrayQueueForEachElem(t *testing.T) {
	q := NewArrayQueue[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	var seen []int
	err := q.ForEachElem(func(i int, e int) error {
		seen = append(seen, e)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)

	stop := errors.New("stop")
	seen = nil
	err = q.ForEachElem(func(i int, e int) error {
		if i == 1 {
			return stop
		}
		seen = append(seen, e)
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{1}, seen)
}
