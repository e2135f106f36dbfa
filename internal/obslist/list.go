package obslist

import (
	"slices"

	"github.com/listsync/listsync/internal/memds"
	"github.com/listsync/listsync/internal/utils"
	"github.com/rs/zerolog"
)

const (
	SOURCE_LOG_FIELD_NAME    = "src"
	LIST_NAME_LOG_FIELD_NAME = "list"

	// index of Add changes requested by Add(), resolved to the length of the list when the change is applied.
	appendIndex = -1
)

// A List is an ordered, index-addressable sequence that notifies its observers of every structural change.
//
// All mutations are serialized through a FIFO of pending changes: a mutation requested while the list
// is already applying a change (typically from a callback) is only enqueued, the running processing loop
// applies it once the callbacks of the current change have returned. Each pending change is validated
// against the current state before being applied; a change that became stale is dropped without
// notification.
//
// A List is not safe for concurrent use by multiple goroutines.
type List[T comparable] struct {
	items []T

	pending         *memds.ArrayQueue[Change[T]]
	processing      bool
	originalRequest Change[T]

	changeCallbacks     []changeCallback[T]
	itemUpdateCallbacks []itemUpdateCallback
	nextCallbackHandle  CallbackHandle

	logger zerolog.Logger
}

type ListConfig struct {
	// (optional) name added to log entries.
	Name string

	// defaults to a disabled logger.
	Logger *zerolog.Logger
}

func NewList[T comparable]() *List[T] {
	return NewListWithConfig[T](ListConfig{})
}

func NewListWithConfig[T comparable](config ListConfig) *List[T] {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str(SOURCE_LOG_FIELD_NAME, "obslist").Logger()
	}
	if config.Name != "" {
		logger = logger.With().Str(LIST_NAME_LOG_FIELD_NAME, config.Name).Logger()
	}

	return &List[T]{
		pending: memds.NewArrayQueue[Change[T]](),
		logger:  logger,
	}
}

// NewListFrom creates a list containing a copy of items, no change is emitted.
func NewListFrom[T comparable](items ...T) *List[T] {
	list := NewList[T]()
	list.items = slices.Clone(items)
	return list
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, fmtIndexOutOfRange(index, len(l.items))
	}
	return l.items[index], nil
}

// At returns the item at index, it panics if the index is out of range.
func (l *List[T]) At(index int) T {
	return utils.Must(l.Get(index))
}

// IndexOf returns the index of the first item equal to item, or -1.
func (l *List[T]) IndexOf(item T) int {
	return slices.Index(l.items, item)
}

func (l *List[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// ForEach calls fn for each item of a snapshot of the list, iteration stops at the first error.
func (l *List[T]) ForEach(fn func(i int, item T) error) error {
	for i, item := range slices.Clone(l.items) {
		if err := fn(i, item); err != nil {
			return err
		}
	}
	return nil
}

// OriginalRequest returns the change whose request started the current (or last) processing loop.
// Callbacks use it to know whether the change they receive was requested by an external caller or
// is a side effect of another change.
func (l *List[T]) OriginalRequest() Change[T] {
	return l.originalRequest
}

// Processing returns true while changes are being applied and notified.
func (l *List[T]) Processing() bool {
	return l.processing
}

// Pending returns the changes waiting to be applied.
func (l *List[T]) Pending() []Change[T] {
	return l.pending.Values()
}

// Set replaces the item at index.
func (l *List[T]) Set(index int, item T) error {
	if index < 0 || index >= len(l.items) {
		return fmtIndexOutOfRange(index, len(l.items))
	}
	l.request(NewReplaceChange(l.items[index], item, index))
	return nil
}

// Add appends item, an addition requested during the processing of another change is appended
// after the effects of all the changes requested before it.
func (l *List[T]) Add(item T) {
	l.request(NewAddChange(item, appendIndex))
}

// Insert inserts item at index. During the processing of another change the upper bound is only
// checked when the change is applied, the insertion is dropped if index exceeds the length of the
// list at that time.
func (l *List[T]) Insert(index int, item T) error {
	if index < 0 || (!l.processing && index > len(l.items)) {
		return fmtIndexOutOfRange(index, len(l.items))
	}
	l.request(NewAddChange(item, index))
	return nil
}

// Remove removes the first item equal to item, it returns false if there is no such item.
func (l *List[T]) Remove(item T) bool {
	index := l.IndexOf(item)
	if index < 0 {
		return false
	}
	utils.PanicIfErr(l.RemoveAt(index))
	return true
}

func (l *List[T]) RemoveAt(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmtIndexOutOfRange(index, len(l.items))
	}
	l.request(NewRemoveChange(l.items[index], index))
	return nil
}

// Move moves the item at oldIndex to newIndex, nothing happens if both indexes are equal.
func (l *List[T]) Move(oldIndex, newIndex int) error {
	if oldIndex < 0 || oldIndex >= len(l.items) {
		return fmtIndexOutOfRange(oldIndex, len(l.items))
	}
	if newIndex < 0 || newIndex >= len(l.items) {
		return fmtIndexOutOfRange(newIndex, len(l.items))
	}
	if oldIndex == newIndex {
		return nil
	}
	l.request(NewMoveChange(l.items[oldIndex], oldIndex, newIndex))
	return nil
}

// Clear removes all items, observers receive a Reset change.
func (l *List[T]) Clear() {
	l.request(NewResetChange[T]())
}

// ItemUpdate informs the item-update callbacks that the first item equal to item has been mutated in place.
func (l *List[T]) ItemUpdate(item T) bool {
	index := l.IndexOf(item)
	if index < 0 {
		return false
	}
	l.request(NewUpdateChange(item, index))
	return true
}

// ItemUpdateAt informs the item-update callbacks that the item at index has been mutated in place.
func (l *List[T]) ItemUpdateAt(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmtIndexOutOfRange(index, len(l.items))
	}
	l.request(NewUpdateChange(l.items[index], index))
	return nil
}

func (l *List[T]) request(change Change[T]) {
	l.pending.Enqueue(change)

	if l.processing {
		return
	}

	l.processPendingChanges(change)
}

func (l *List[T]) processPendingChanges(originalRequest Change[T]) {
	l.processing = true
	l.originalRequest = originalRequest

	defer func() {
		l.processing = false

		//the queue is only non-empty if a callback panicked.
		if !l.pending.Empty() {
			l.logger.Warn().Int("count", l.pending.Size()).Msg("discarding pending changes")
			l.pending.Clear()
		}
	}()

	for {
		change, ok := l.pending.Dequeue()
		if !ok {
			return
		}

		applied, ok := l.apply(change)
		if !ok {
			l.logger.Debug().
				Stringer("kind", change.Kind).
				Int("oldIndex", change.OldIndex).
				Int("newIndex", change.NewIndex).
				Int("length", len(l.items)).
				Msg("dropped stale change")
			continue
		}

		l.notify(applied)
	}
}

// apply validates change against the current state and applies it, the returned change has
// its indexes and old item resolved.
func (l *List[T]) apply(change Change[T]) (Change[T], bool) {
	switch change.Kind {
	case Add:
		if change.NewIndex == appendIndex {
			change.NewIndex = len(l.items)
		}
		if change.NewIndex < 0 || change.NewIndex > len(l.items) {
			return change, false
		}
		l.items = slices.Insert(l.items, change.NewIndex, change.NewItem)
	case Remove:
		if !l.holdsAt(change.OldIndex, change.OldItem) {
			return change, false
		}
		l.items = slices.Delete(l.items, change.OldIndex, change.OldIndex+1)
	case Replace:
		if change.NewIndex < 0 || change.NewIndex >= len(l.items) {
			return change, false
		}
		change.OldItem = l.items[change.NewIndex]
		l.items[change.NewIndex] = change.NewItem
	case Move:
		if !l.holdsAt(change.OldIndex, change.OldItem) || change.NewIndex < 0 || change.NewIndex >= len(l.items) {
			return change, false
		}
		l.items = slices.Delete(l.items, change.OldIndex, change.OldIndex+1)
		l.items = slices.Insert(l.items, change.NewIndex, change.NewItem)
	case Reset:
		clear(l.items)
		l.items = l.items[:0]
	case Update:
		if !l.holdsAt(change.NewIndex, change.NewItem) {
			return change, false
		}
	default:
		return change, false
	}

	return change, true
}

func (l *List[T]) holdsAt(index int, item T) bool {
	return index >= 0 && index < len(l.items) && l.items[index] == item
}
