/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"container/heap"
	"sort"

	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/values"
)

// sortKey holds the column key and direction of a sort.
type sortKey struct {
	rows       *DataTable
	key        string
	descending bool
}

// compare orders two input positions. Equal values keep input order, in both
// directions, which makes the ordering total and the sort stable.
func (s sortKey) compare(i, j int) int {
	cmp := values.Compare(s.rows.rows[i].Get(s.key), s.rows.rows[j].Get(s.key))
	if s.descending {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp
	}
	switch {
	case i < j:
		return -1
	case i > j:
		return 1
	}
	return 0
}

// topKHeap implements a max-heap for top-K selection
// When we want the first K elements, we use a max-heap:
// - If new element orders before the max, pop max and push new element
// - At the end, heap contains the K first elements
type topKHeap struct {
	indices []int
	key     sortKey
}

func (h *topKHeap) Len() int { return len(h.indices) }

// Less puts the element that orders last at the top of the heap.
func (h *topKHeap) Less(i, j int) bool {
	return h.key.compare(h.indices[i], h.indices[j]) > 0
}

func (h *topKHeap) Swap(i, j int) {
	h.indices[i], h.indices[j] = h.indices[j], h.indices[i]
}

func (h *topKHeap) Push(x interface{}) {
	h.indices = append(h.indices, x.(int))
}

func (h *topKHeap) Pop() interface{} {
	old := h.indices
	n := len(old)
	x := old[n-1]
	h.indices = old[0 : n-1]
	return x
}

// peek returns the top element without removing it
func (h *topKHeap) peek() int {
	return h.indices[0]
}

// SortIndices returns a sorted copy of indices ordered by the column key.
// The input slice is not modified.
func (dt *DataTable) SortIndices(indices []int, key string, dir query.Direction) []int {
	return dt.SortedTopK(indices, key, dir, len(indices))
}

// SortedTopK returns the first limit indices of the sorted order of indices.
// Uses heap-based selection: O(n log k) instead of O(n log n) for full sort.
//
// Algorithm:
// 1. Build a max-heap of size K (keeping the K first elements seen so far)
// 2. Scan all indices, replacing heap top when an earlier element is found
// 3. Sort the final K elements
func (dt *DataTable) SortedTopK(indices []int, key string, dir query.Direction, limit int) []int {
	if len(indices) == 0 || limit <= 0 {
		return []int{}
	}
	sk := sortKey{rows: dt, key: key, descending: dir == query.Descending}

	// If K >= n, just sort all and return
	if limit >= len(indices) {
		return sortIndices(append([]int(nil), indices...), sk)
	}

	h := &topKHeap{
		indices: make([]int, 0, limit),
		key:     sk,
	}
	h.indices = append(h.indices, indices[:limit]...)
	heap.Init(h)

	for _, idx := range indices[limit:] {
		if sk.compare(idx, h.peek()) < 0 {
			heap.Pop(h)
			heap.Push(h, idx)
		}
	}

	return sortIndices(h.indices, sk)
}

// sortIndices sorts a slice of indices in place.
func sortIndices(indices []int, sk sortKey) []int {
	sort.Slice(indices, func(i, j int) bool {
		return sk.compare(indices[i], indices[j]) < 0
	})
	return indices
}
