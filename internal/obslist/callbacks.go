package obslist

import (
	"slices"
)

type CallbackHandle uint32

type ChangeCallback[T any] func(change Change[T])

// ItemUpdateCallback is called with the index of an item that has been mutated in place.
type ItemUpdateCallback func(index int)

type changeCallback[T any] struct {
	handle CallbackHandle
	fn     ChangeCallback[T]
}

type itemUpdateCallback struct {
	handle CallbackHandle
	fn     ItemUpdateCallback
}

// OnChange registers a callback called synchronously after each applied structural change.
func (l *List[T]) OnChange(fn ChangeCallback[T]) CallbackHandle {
	handle := l.newCallbackHandle()
	l.changeCallbacks = append(l.changeCallbacks, changeCallback[T]{handle: handle, fn: fn})
	return handle
}

func (l *List[T]) RemoveChangeCallback(handle CallbackHandle) {
	l.changeCallbacks = slices.DeleteFunc(l.changeCallbacks, func(c changeCallback[T]) bool {
		return c.handle == handle
	})
}

// OnItemUpdate registers a callback called synchronously after each applied item update signal.
func (l *List[T]) OnItemUpdate(fn ItemUpdateCallback) CallbackHandle {
	handle := l.newCallbackHandle()
	l.itemUpdateCallbacks = append(l.itemUpdateCallbacks, itemUpdateCallback{handle: handle, fn: fn})
	return handle
}

func (l *List[T]) RemoveItemUpdateCallback(handle CallbackHandle) {
	l.itemUpdateCallbacks = slices.DeleteFunc(l.itemUpdateCallbacks, func(c itemUpdateCallback) bool {
		return c.handle == handle
	})
}

func (l *List[T]) newCallbackHandle() CallbackHandle {
	l.nextCallbackHandle++
	return l.nextCallbackHandle
}

func (l *List[T]) notify(change Change[T]) {
	if !change.IsStructural() {
		for _, callback := range slices.Clone(l.itemUpdateCallbacks) {
			callback.fn(change.NewIndex)
		}
		return
	}

	for _, callback := range slices.Clone(l.changeCallbacks) {
		callback.fn(change)
	}
}
