// Package taglist implements the ordered string collections behind the
// equipment, ticket, flow and summary fields of a case.
package taglist

import "strings"

type Direction int

const (
	Up Direction = iota
	Down
)

// List is an ordered collection. Insertion order is display order. When
// Unique is set, Add ignores values already present.
//
// Every mutator reports whether the list changed so callers only persist
// and re-render on real changes.
type List[T comparable] struct {
	items     []T
	unique    bool
	normalize func(T) (T, bool)
}

// New returns a list of T. normalize trims an incoming value and reports
// false when nothing is left of it.
func New[T comparable](unique bool, normalize func(T) (T, bool)) *List[T] {
	return &List[T]{unique: unique, normalize: normalize}
}

// Strings is a List of plain strings.
type Strings = List[string]

func NewStrings(unique bool) *Strings {
	return New(unique, TrimString)
}

func TrimString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func (l *List[T]) Unique() bool { return l.unique }

func (l *List[T]) Len() int { return len(l.items) }

// Items returns a copy of the contents.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

func (l *List[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

func (l *List[T]) IndexOf(v T) int {
	for i, item := range l.items {
		if item == v {
			return i
		}
	}
	return -1
}

// Add appends v. Blank values are ignored, as are duplicates on a
// unique list.
func (l *List[T]) Add(v T) bool {
	v, ok := l.normalize(v)
	if !ok {
		return false
	}
	if l.unique && l.Contains(v) {
		return false
	}
	l.items = append(l.items, v)
	return true
}

func (l *List[T]) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// RemoveFirst deletes the first item matching pred.
func (l *List[T]) RemoveFirst(pred func(T) bool) bool {
	for i, item := range l.items {
		if pred(item) {
			return l.RemoveAt(i)
		}
	}
	return false
}

// MoveAdjacent swaps item i with its neighbour. Moving the first item up
// or the last item down does nothing.
func (l *List[T]) MoveAdjacent(i int, dir Direction) bool {
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if i < 0 || i >= len(l.items) || j < 0 || j >= len(l.items) {
		return false
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	return true
}

// MoveToPosition removes the item at from and reinserts it at to in the
// shortened sequence. to is clamped to the end of the list.
func (l *List[T]) MoveToPosition(from, to int) bool {
	if from < 0 || from >= len(l.items) || to < 0 || from == to {
		return false
	}
	item := l.items[from]
	rest := append(l.items[:from:from], l.items[from+1:]...)
	if to > len(rest) {
		to = len(rest)
	}
	out := make([]T, 0, len(l.items))
	out = append(out, rest[:to]...)
	out = append(out, item)
	out = append(out, rest[to:]...)
	l.items = out
	return true
}

// ReplaceAt swaps in v at i. A blank v is treated as a cancelled edit.
func (l *List[T]) ReplaceAt(i int, v T) bool {
	v, ok := l.normalize(v)
	if !ok || i < 0 || i >= len(l.items) {
		return false
	}
	if l.items[i] == v {
		return false
	}
	l.items[i] = v
	return true
}

func (l *List[T]) Clear() bool {
	if len(l.items) == 0 {
		return false
	}
	l.items = nil
	return true
}

// Load replaces the contents without dedup or trimming, used when
// hydrating from storage.
func (l *List[T]) Load(items []T) {
	l.items = append([]T(nil), items...)
}
