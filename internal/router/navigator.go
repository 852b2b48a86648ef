package router

import "sync"

// Transition describes a committed navigation.
type Transition struct {
	From Unit
	To   Unit
}

// Navigator owns the current path for the lifetime of a shell. It resolves every
// navigation against its table and commits the result before observers run, so no
// observer can see the previous unit after a transition.
type Navigator struct {
	table *Table

	mu        sync.Mutex
	current   Unit
	observers []func(Transition)
}

// NewNavigator starts a navigator at start, which may be an unknown path.
func NewNavigator(table *Table, start string) *Navigator {
	if table == nil {
		table = Default()
	}
	return &Navigator{table: table, current: table.Resolve(start)}
}

// OnTransition registers fn to run after each committed navigation.
func (n *Navigator) OnTransition(fn func(Transition)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, fn)
}

// Navigate resolves path and makes it current.
func (n *Navigator) Navigate(path string) Unit {
	next := n.table.Resolve(path)

	n.mu.Lock()
	prev := n.current
	n.current = next
	observers := make([]func(Transition), len(n.observers))
	copy(observers, n.observers)
	n.mu.Unlock()

	for _, fn := range observers {
		fn(Transition{From: prev, To: next})
	}
	return next
}

// Current returns the committed unit.
func (n *Navigator) Current() Unit {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Table returns the table the navigator resolves against.
func (n *Navigator) Table() *Table {
	return n.table
}
