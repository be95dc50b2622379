// Package checklist tracks which items of the application checklist a visitor
// has ticked.
package checklist

import (
	"errors"
	"fmt"
)

var ErrUnknownItem = errors.New("unknown checklist item")

// List is an ordered set of item ids with a checked flag each. All items
// start unchecked. It is not safe for concurrent use.
type List struct {
	items   []string
	checked map[string]bool
}

func New(items []string) *List {
	return &List{
		items:   append([]string(nil), items...),
		checked: make(map[string]bool, len(items)),
	}
}

// Items returns the item ids in display order.
func (l *List) Items() []string { return l.items }

func (l *List) IsChecked(id string) bool { return l.checked[id] }

// Toggle flips one item and reports its new state.
func (l *List) Toggle(id string) (bool, error) {
	if !l.has(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	l.checked[id] = !l.checked[id]
	return l.checked[id], nil
}

func (l *List) has(id string) bool {
	for _, it := range l.items {
		if it == id {
			return true
		}
	}
	return false
}

// Reset unchecks every item.
func (l *List) Reset() {
	clear(l.checked)
}

func (l *List) Checked() int {
	n := 0
	for _, it := range l.items {
		if l.checked[it] {
			n++
		}
	}
	return n
}

func (l *List) Total() int     { return len(l.items) }
func (l *List) Remaining() int { return l.Total() - l.Checked() }

// Progress is the checked share as a whole percentage, rounded half up. An
// empty list reports 0.
func (l *List) Progress() int {
	t := l.Total()
	if t == 0 {
		return 0
	}
	return (200*l.Checked() + t) / (2 * t)
}

// Complete reports whether every item is checked. An empty list is never
// complete.
func (l *List) Complete() bool {
	return l.Total() > 0 && l.Checked() == l.Total()
}

// CheckedIDs returns the checked items in display order.
func (l *List) CheckedIDs() []string {
	out := make([]string, 0, len(l.items))
	for _, it := range l.items {
		if l.checked[it] {
			out = append(out, it)
		}
	}
	return out
}
