package queue

import "math"

// TopK collects the k best Items seen so far.
type TopK struct {
	k    int
	heap *PriorityQueue
}

// NewTopK returns a collector bounded to k items.
func NewTopK(k int) *TopK {
	if k < 0 {
		k = 0
	}
	return &TopK{k: k, heap: NewMax(k)}
}

// Full reports whether k items have been collected.
func (t *TopK) Full() bool { return t.heap.Len() >= t.k }

// Len returns the number of collected items.
func (t *TopK) Len() int { return t.heap.Len() }

// Worst returns the distance of the k-th best item, or +Inf while not full.
func (t *TopK) Worst() float32 {
	if !t.Full() {
		return float32(math.Inf(1))
	}
	top, _ := t.heap.TopItem()
	return top.Distance
}

// Offer adds item if it ranks ahead of the current k-th best.
// It reports whether the item was kept.
func (t *TopK) Offer(item Item) bool {
	if t.k == 0 {
		return false
	}
	if !t.Full() {
		t.heap.PushItem(item)
		return true
	}
	top, _ := t.heap.TopItem()
	if !Before(item, top) {
		return false
	}
	t.heap.ReplaceTop(item)
	return true
}

// Sorted drains the collector and returns its items best first.
func (t *TopK) Sorted() []Item {
	out := make([]Item, t.heap.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i], _ = t.heap.PopItem()
	}
	return out
}
