package resolver

import "go.trai.ch/lingo/internal/core/domain"

// WorkItem is one dependency waiting to be built.
type WorkItem struct {
	// Parent is the node that declared the dependency, or domain.RootID.
	Parent domain.NodeID
	Ref    domain.PackageRef
	// Base is the directory relative path origins are resolved against.
	Base string
}

// Queue is a LIFO work-list owned by a single resolution pass.
type Queue struct {
	items []WorkItem
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an item on top.
func (q *Queue) Push(item WorkItem) {
	q.items = append(q.items, item)
}

// Pop removes the most recently pushed item.
func (q *Queue) Pop() (WorkItem, bool) {
	if len(q.items) == 0 {
		return WorkItem{}, false
	}
	last := len(q.items) - 1
	item := q.items[last]
	q.items[last] = WorkItem{}
	q.items = q.items[:last]
	return item, true
}

// Len returns the number of pending items.
func (q *Queue) Len() int {
	return len(q.items)
}

// PushAll pushes refs so that the first one is popped first.
func (q *Queue) PushAll(parent domain.NodeID, base string, refs []domain.PackageRef) {
	for i := len(refs) - 1; i >= 0; i-- {
		q.Push(WorkItem{Parent: parent, Ref: refs[i], Base: base})
	}
}
