// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package scoring

import (
	"container/heap"
	"sort"
)

// scored is one candidate (movie, score) pair during ranking.
type scored struct {
	movieID int64
	score   float64
}

// better reports whether a should outrank b: higher score first, ties
// broken by ascending movie id.
func better(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.movieID < b.movieID
}

// topK keeps the k best candidates seen so far in a bounded min-heap.
// The heap root is the current worst keeper, so each new candidate
// costs one comparison when it doesn't make the cut.
type topK struct {
	k     int
	items scoredHeap
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make(scoredHeap, 0, k)}
}

func (t *topK) offer(s scored) {
	if len(t.items) < t.k {
		heap.Push(&t.items, s)
		return
	}
	if better(s, t.items[0]) {
		t.items[0] = s
		heap.Fix(&t.items, 0)
	}
}

// ranked drains the heap into final order: descending score, ties by
// ascending movie id.
func (t *topK) ranked() []scored {
	out := make([]scored, len(t.items))
	copy(out, t.items)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// scoredHeap is a min-heap where the root is the worst keeper.
type scoredHeap []scored

func (h scoredHeap) Len() int           { return len(h) }
func (h scoredHeap) Less(i, j int) bool { return better(h[j], h[i]) }
func (h scoredHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scoredHeap) Push(x any)        { *h = append(*h, x.(scored)) }
func (h *scoredHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
