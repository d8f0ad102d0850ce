// Package pqueue implements a stable ascending priority queue.
//
// Values are kept in ascending order according to a caller-supplied
// comparison function.  Values of equal rank leave the queue in the order
// they entered it.
//
package pqueue

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CompareFunc returns a negative number if a ranks before b, a positive
// number if a ranks after b, and zero if they rank equally.
type CompareFunc[T any] func(a, b T) int

// Queue is a stable ascending priority queue of T.
type Queue[T any] struct {
	items []T
	cmp   CompareFunc[T]
}

// New returns an empty Queue ordered by cmp.
func New[T any](cmp CompareFunc[T]) *Queue[T] {
	assert.Assertf(cmp != nil, "pqueue.New called with nil CompareFunc")
	return &Queue[T]{cmp: cmp}
}

// Insert places value immediately before the first queued element that
// ranks strictly after it, or at the end if there is no such element.
func (q *Queue[T]) Insert(value T) {
	i := sort.Search(len(q.items), func(i int) bool {
		return q.cmp(value, q.items[i]) < 0
	})
	q.items = slices.Insert(q.items, i, value)
}

// Peek returns the lowest-ranked element without removing it.  The bool is
// false if the queue is empty.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// DeleteFirst removes the lowest-ranked element.  It does nothing if the
// queue is empty.
func (q *Queue[T]) DeleteFirst() {
	if len(q.items) == 0 {
		return
	}
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
}

// Pop removes and returns the lowest-ranked element.
func (q *Queue[T]) Pop() (T, bool) {
	value, ok := q.Peek()
	q.DeleteFirst()
	return value, ok
}

// IsEmpty returns true iff the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Each calls fn for every queued element in pop order.
func (q *Queue[T]) Each(fn func(T)) {
	for _, value := range q.items {
		fn(value)
	}
}

// Dump writes a programmer-readable debugging dump of the queue's contents,
// in pop order, to the given writer.
func (q *Queue[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Queue{\n")
	for index, value := range q.items {
		fmt.Fprintf(&buf, "\t[%d] = %v\n", index, value)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
