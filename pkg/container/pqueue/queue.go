// Package pqueue is an ordered priority queue that can be capped to the best
// N items. Items with equal priority keep their insertion order.
package pqueue

import (
	"sort"
)

func WithOrderAsc() Option {
	return func(q *Queue) {
		q.order = orderAsc
	}
}

func WithOrderDesc() Option {
	return func(q *Queue) {
		q.order = orderDesc
	}
}

// WithCap keeps only the first size items in queue order.
func WithCap(size uint) Option {
	return func(q *Queue) {
		q.cap = int(size)
	}
}

type Option func(*Queue)

type order uint8

const (
	orderAsc order = iota
	orderDesc
)

type item struct {
	value interface{}
	prior float64
}

func New(opts ...Option) *Queue {
	q := &Queue{order: orderAsc, cap: -1}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

type Queue struct {
	order order
	cap   int
	items []item
}

func (q *Queue) before(a, b float64) bool {
	if q.order == orderAsc {
		return a < b
	}
	return a > b
}

// Push inserts val after every queued item of equal priority. Pushing to a
// full queue drops whichever item falls past the cap.
func (q *Queue) Push(val interface{}, priority float64) {
	idx := sort.Search(len(q.items), func(i int) bool {
		return q.before(priority, q.items[i].prior)
	})
	if q.cap >= 0 && idx >= q.cap {
		return
	}
	q.items = append(q.items, item{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item{value: val, prior: priority}
	if q.cap >= 0 && len(q.items) > q.cap {
		q.items[len(q.items)-1] = item{}
		q.items = q.items[:q.cap]
	}
}

// Head removes and returns the first item, nil when the queue is empty.
func (q *Queue) Head() interface{} {
	if len(q.items) == 0 {
		return nil
	}
	x := q.items[0]
	q.items[0] = item{}
	q.items = q.items[1:]
	return x.value
}

// Tail removes and returns the last item, nil when the queue is empty.
func (q *Queue) Tail() interface{} {
	l := len(q.items) - 1
	if l < 0 {
		return nil
	}
	x := q.items[l]
	q.items[l] = item{}
	q.items = q.items[:l]
	return x.value
}

func (q *Queue) PopAll() []interface{} {
	pulled := make([]interface{}, len(q.items))
	for i := range q.items {
		pulled[i] = q.items[i].value
	}
	q.items = nil
	return pulled
}

func (q *Queue) Cap() int { return q.cap }

func (q *Queue) Len() int { return len(q.items) }

func (q *Queue) Seek(idx int) (interface{}, float64) {
	it := q.items[idx]
	return it.value, it.prior
}
