package listfilter

import (
	"slices"

	"github.com/listsync/listsync/internal/obslist"
	"github.com/listsync/listsync/internal/utils"
)

func (f *Filter[T]) filteredItemsChanged(change obslist.Change[T]) {
	f.internalChange.Execute(func() {
		switch change.Kind {
		case obslist.Add:
			f.handleAdditionToFilteredItems(change)
		case obslist.Move:
			f.handleMoveInFilteredItems(change)
		case obslist.Remove:
			f.handleRemovalFromFilteredItems(change)
		case obslist.Replace:
			f.handleReplacementInFilteredItems(change)
		case obslist.Reset:
			f.handleResetOnFilteredItems()
		}
	})
}

func (f *Filter[T]) filteredItemUpdated(index int) {
	f.internalChange.Execute(func() {
		if !f.passes(f.filteredItems.At(index)) {
			f.removeFilteredItemAt(index)
		}
	})
}

func (f *Filter[T]) handleAdditionToFilteredItems(change obslist.Change[T]) {
	//additions performed by a rebuild
	if f.filteredItems.OriginalRequest().Kind == obslist.Reset {
		return
	}

	item := change.NewItem
	if !f.passes(item) || f.itemsSource == nil {
		//cancel the addition
		f.removeFilteredItemAt(change.NewIndex)
		return
	}

	f.logMutationError(f.itemsSource.Insert(f.TranslateTargetIndex(change.NewIndex, -1), item), obslist.Add)
}

func (f *Filter[T]) handleMoveInFilteredItems(change obslist.Change[T]) {
	if f.itemsSource == nil {
		return
	}

	oldSourceIndex := f.itemsSource.IndexOf(change.NewItem)
	if oldSourceIndex < 0 {
		return
	}

	referenceDirection := utils.Sign(change.NewIndex - change.OldIndex)
	newSourceIndex := f.TranslateTargetIndex(change.NewIndex, referenceDirection)

	f.logMutationError(f.itemsSource.Move(oldSourceIndex, newSourceIndex), obslist.Move)
}

func (f *Filter[T]) handleRemovalFromFilteredItems(change obslist.Change[T]) {
	if f.consumeOwnRemoval(change) || f.itemsSource == nil {
		return
	}
	f.itemsSource.Remove(change.OldItem)
}

func (f *Filter[T]) handleReplacementInFilteredItems(change obslist.Change[T]) {
	if f.itemsSource != nil {
		sourceIndex := f.itemsSource.IndexOf(change.OldItem)
		if sourceIndex >= 0 {
			f.logMutationError(f.itemsSource.Set(sourceIndex, change.NewItem), obslist.Replace)
		}
	}

	if !f.passes(change.NewItem) {
		f.removeFilteredItemAt(change.NewIndex)
	}
}

func (f *Filter[T]) handleResetOnFilteredItems() {
	if f.itemsSource == nil || f.filterFunction == nil {
		return
	}

	count := 0
	for _, item := range f.itemsSource.Items() {
		if f.filterFunction(item) {
			f.filteredItems.Add(item)
			count++
		}
	}

	f.logger.Debug().Int("count", count).Int("sourceLength", f.itemsSource.Len()).Msg("rebuilding filtered items")
}

// removeFilteredItem removes item from FilteredItems without forwarding the removal to ItemsSource.
func (f *Filter[T]) removeFilteredItem(item T) {
	if index := f.filteredItems.IndexOf(item); index >= 0 {
		f.removeFilteredItemAt(index)
	}
}

// removeFilteredItemAt removes the item at index from FilteredItems without forwarding the removal to ItemsSource.
func (f *Filter[T]) removeFilteredItemAt(index int) {
	if index < 0 || index >= f.filteredItems.Len() {
		f.logMutationError(f.filteredItems.RemoveAt(index), obslist.Remove)
		return
	}

	//a removal requested outside of a processing loop is notified before RemoveAt returns,
	//while the change handlers are still disabled.
	if f.filteredItems.Processing() {
		f.ownRemovals = append(f.ownRemovals, obslist.NewRemoveChange(f.filteredItems.At(index), index))
	}
	f.logMutationError(f.filteredItems.RemoveAt(index), obslist.Remove)
}

// consumeOwnRemoval reports whether change was enqueued by removeFilteredItemAt. Recorded removals
// that are no longer pending have been dropped as stale and are forgotten.
func (f *Filter[T]) consumeOwnRemoval(change obslist.Change[T]) bool {
	if len(f.ownRemovals) == 0 {
		return false
	}

	pending := f.filteredItems.Pending()
	own := false

	f.ownRemovals = slices.DeleteFunc(f.ownRemovals, func(removal obslist.Change[T]) bool {
		if !own && removal == change {
			own = true
			return true
		}
		return !slices.Contains(pending, removal)
	})
	return own
}
