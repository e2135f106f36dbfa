package obslist

var (
	CHANGE_KIND_NAMES = [...]string{
		UnspecifiedChange: "unspecified-change",
		Add:               "add",
		Remove:            "remove",
		Replace:           "replace",
		Move:              "move",
		Reset:             "reset",
		Update:            "update",
	}
)

type ChangeKind uint8

const (
	UnspecifiedChange ChangeKind = iota
	Add
	Remove
	Replace
	Move
	Reset

	// Update signals that the item at an index was mutated in place, it is only delivered
	// to item-update callbacks.
	Update
)

func (k ChangeKind) String() string {
	if int(k) >= len(CHANGE_KIND_NAMES) {
		return "unknown-change"
	}
	return CHANGE_KIND_NAMES[k]
}

// A Change describes a single structural mutation of a List. Indices that are meaningless
// for the kind of the change are set to -1.
type Change[T any] struct {
	Kind ChangeKind

	NewItem  T
	NewIndex int

	OldItem  T
	OldIndex int
}

func NewAddChange[T any](item T, index int) Change[T] {
	return Change[T]{
		Kind:     Add,
		NewItem:  item,
		NewIndex: index,
		OldIndex: -1,
	}
}

func NewRemoveChange[T any](item T, index int) Change[T] {
	return Change[T]{
		Kind:     Remove,
		OldItem:  item,
		OldIndex: index,
		NewIndex: -1,
	}
}

func NewReplaceChange[T any](oldItem, newItem T, index int) Change[T] {
	return Change[T]{
		Kind:     Replace,
		OldItem:  oldItem,
		NewItem:  newItem,
		OldIndex: index,
		NewIndex: index,
	}
}

// NewMoveChange creates a Move change, both NewItem and OldItem are set to the moved item.
func NewMoveChange[T any](item T, oldIndex, newIndex int) Change[T] {
	return Change[T]{
		Kind:     Move,
		OldItem:  item,
		NewItem:  item,
		OldIndex: oldIndex,
		NewIndex: newIndex,
	}
}

func NewResetChange[T any]() Change[T] {
	return Change[T]{
		Kind:     Reset,
		OldIndex: -1,
		NewIndex: -1,
	}
}

func NewUpdateChange[T any](item T, index int) Change[T] {
	return Change[T]{
		Kind:     Update,
		OldItem:  item,
		NewItem:  item,
		OldIndex: index,
		NewIndex: index,
	}
}

// IsStructural returns true for all kinds except Update.
func (c Change[T]) IsStructural() bool {
	return c.Kind != Update
}
