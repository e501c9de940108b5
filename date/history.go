package date

import (
	"iter"
	"slices"
)

// History is a series of values indexed by day, kept in chronological order
// with at most one value per day.
type History[T any] struct {
	points []point[T]
}

type point[T any] struct {
	on    Date
	value T
}

// Len returns the number of days in h.
func (h *History[T]) Len() int { return len(h.points) }

// Latest returns the last day of h and its value, or zero values if h is empty.
func (h *History[T]) Latest() (day Date, value T) {
	if len(h.points) == 0 {
		return day, value
	}
	p := h.points[len(h.points)-1]
	return p.on, p.value
}

func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.points, day, func(p point[T], d Date) int { return p.on.Compare(d) })
}

// Append sets the value on a day, replacing the previous one.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.points[i].value = v
		return h
	}
	h.points = slices.Insert(h.points, i, point[T]{on, v})
	return h
}

// Values iterates over days and values in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for _, p := range h.points {
			if !yield(p.on, p.value) {
				return
			}
		}
	}
}

// Get returns the value on day, if any.
func (h *History[T]) Get(day Date) (value T, ok bool) {
	if i, found := h.search(day); found {
		return h.points[i].value, true
	}
	return value, false
}

// ValueAsOf returns the value on day or, failing that, the last one before it.
func (h *History[T]) ValueAsOf(day Date) (value T, ok bool) {
	i, found := h.search(day)
	switch {
	case found:
		return h.points[i].value, true
	case i > 0:
		return h.points[i-1].value, true
	default:
		return value, false
	}
}
