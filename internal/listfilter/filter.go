package listfilter

import (
	"slices"

	"github.com/listsync/listsync/internal/obslist"
	"github.com/listsync/listsync/internal/utils"
	"github.com/rs/zerolog"
)

const (
	FILTERED_ITEMS_LIST_NAME = "filtered-items"
)

// A Predicate determines whether an item appears in the filtered items (true) or not (false).
// A nil Predicate lets no item pass.
type Predicate[T any] func(item T) bool

// AllPass is the default predicate of filters.
func AllPass[T any](T) bool {
	return true
}

// A Filter maintains FilteredItems, the subsequence of ItemsSource whose items pass the filter
// function, relative order preserved.
//
// Changes made to ItemsSource are reflected on FilteredItems:
//   - Add: the new item is inserted at the corresponding position if it passes.
//   - Move: a passing item is moved to the corresponding position.
//   - Remove: the item is removed if present.
//   - Replace: the new item is re-evaluated, it is inserted, updated or removed depending on whether it
//     passes and whether the old item was present.
//   - Reset: FilteredItems is cleared.
//
// Changes made to FilteredItems are reflected on ItemsSource:
//   - Add: the item is inserted at the translated position into ItemsSource; an item that does not
//     pass is removed from FilteredItems right away and ItemsSource is left untouched.
//   - Move: the item is moved accordingly in ItemsSource.
//   - Remove: the item is removed from ItemsSource.
//   - Replace: the item is replaced in ItemsSource too, then removed from FilteredItems if the
//     replacement does not pass.
//   - Reset (Clear): FilteredItems is rebuilt from ItemsSource. Clearing ItemsSource is done by calling
//     Clear on ItemsSource.
//
// A Filter is not safe for concurrent use by multiple goroutines.
type Filter[T comparable] struct {
	filterFunction Predicate[T]
	itemsSource    *obslist.List[T]
	filteredItems  *obslist.List[T]
	internalChange internalChange

	//removals enqueued on FilteredItems by the filter itself, they are not forwarded to ItemsSource.
	ownRemovals []obslist.Change[T]

	sourceChangeHandle       obslist.CallbackHandle
	sourceItemUpdateHandle   obslist.CallbackHandle
	filteredChangeHandle     obslist.CallbackHandle
	filteredItemUpdateHandle obslist.CallbackHandle

	logger zerolog.Logger
}

type FilterConfig struct {
	// defaults to a disabled logger, also used by FilteredItems.
	Logger *zerolog.Logger
}

func NewFilter[T comparable]() *Filter[T] {
	return NewFilterWithConfig[T](FilterConfig{})
}

func NewFilterWithConfig[T comparable](config FilterConfig) *Filter[T] {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str(obslist.SOURCE_LOG_FIELD_NAME, "listfilter").Logger()
	}

	f := &Filter[T]{
		filterFunction: AllPass[T],
		logger:         logger,
		filteredItems: obslist.NewListWithConfig[T](obslist.ListConfig{
			Name:   FILTERED_ITEMS_LIST_NAME,
			Logger: config.Logger,
		}),
	}

	f.filteredChangeHandle = f.filteredItems.OnChange(f.filteredItemsChanged)
	f.filteredItemUpdateHandle = f.filteredItems.OnItemUpdate(f.filteredItemUpdated)
	return f
}

func (f *Filter[T]) FilterFunction() Predicate[T] {
	return f.filterFunction
}

// SetFilterFunction sets the filter function and rebuilds FilteredItems, even if fn is the current
// function: a function can evaluate differently from one call to another.
func (f *Filter[T]) SetFilterFunction(fn Predicate[T]) {
	f.filterFunction = fn
	f.filteredItems.Clear()
}

func (f *Filter[T]) ItemsSource() *obslist.List[T] {
	return f.itemsSource
}

// SetItemsSource stops watching the current source, starts watching source and rebuilds FilteredItems.
// Nothing happens if source is the current source.
func (f *Filter[T]) SetItemsSource(source *obslist.List[T]) {
	if f.itemsSource == source {
		return
	}

	f.detachItemsSource()
	f.itemsSource = source

	if source != nil {
		f.sourceChangeHandle = source.OnChange(f.sourceChanged)
		f.sourceItemUpdateHandle = source.OnItemUpdate(f.sourceItemUpdated)
	}

	f.filteredItems.Clear()
}

// FilteredItems returns the live filtered view, changes made to it are reflected on ItemsSource.
func (f *Filter[T]) FilteredItems() *obslist.List[T] {
	return f.filteredItems
}

// Refresh rebuilds FilteredItems, it should be called when the result of the filter function may
// have changed for several items.
func (f *Filter[T]) Refresh() {
	f.filteredItems.Clear()
}

// Consistent returns true if FilteredItems is equal to the items of ItemsSource that pass the filter function.
func (f *Filter[T]) Consistent() bool {
	var expected []T
	if f.itemsSource != nil {
		expected = utils.FilterSlice(f.itemsSource.Items(), f.passes)
	}
	return slices.Equal(expected, f.filteredItems.Items())
}

// Close stops the synchronization between ItemsSource and FilteredItems, their content is left unchanged.
func (f *Filter[T]) Close() {
	f.detachItemsSource()
	f.itemsSource = nil

	f.filteredItems.RemoveChangeCallback(f.filteredChangeHandle)
	f.filteredItems.RemoveItemUpdateCallback(f.filteredItemUpdateHandle)
}

func (f *Filter[T]) detachItemsSource() {
	if f.itemsSource == nil {
		return
	}
	f.itemsSource.RemoveChangeCallback(f.sourceChangeHandle)
	f.itemsSource.RemoveItemUpdateCallback(f.sourceItemUpdateHandle)
}

func (f *Filter[T]) passes(item T) bool {
	return f.filterFunction != nil && f.filterFunction(item)
}

func (f *Filter[T]) logMutationError(err error, kind obslist.ChangeKind) {
	if err != nil {
		f.logger.Error().Err(err).Stringer("kind", kind).Msg("failed to forward change")
	}
}
