package listfilter

import (
	"github.com/listsync/listsync/internal/obslist"
)

func (f *Filter[T]) sourceChanged(change obslist.Change[T]) {
	f.internalChange.Execute(func() {
		switch change.Kind {
		case obslist.Add:
			f.handleAdditionToItemsSource(change)
		case obslist.Move:
			f.handleMoveInItemsSource(change)
		case obslist.Remove:
			f.removeFilteredItem(change.OldItem)
		case obslist.Replace:
			f.handleReplacementInItemsSource(change)
		case obslist.Reset:
			f.filteredItems.Clear()
		}
	})
}

func (f *Filter[T]) sourceItemUpdated(index int) {
	f.internalChange.Execute(func() {
		item := f.itemsSource.At(index)

		if !f.passes(item) {
			f.removeFilteredItem(item)
			return
		}

		if !f.filteredItems.Contains(item) {
			f.insertIntoFilteredItems(index, item)
		}
	})
}

func (f *Filter[T]) handleAdditionToItemsSource(change obslist.Change[T]) {
	if !f.passes(change.NewItem) {
		return
	}
	f.insertIntoFilteredItems(change.NewIndex, change.NewItem)
}

func (f *Filter[T]) handleMoveInItemsSource(change obslist.Change[T]) {
	item := change.NewItem
	if !f.passes(item) {
		return
	}

	oldTargetIndex := f.filteredItems.IndexOf(item)
	if oldTargetIndex < 0 {
		f.insertIntoFilteredItems(change.NewIndex, item)
		return
	}

	newTargetIndex := f.TranslateSourceIndex(change.NewIndex)
	if oldTargetIndex < newTargetIndex {
		//the moved item still occupies its old slot before the translated index.
		newTargetIndex--
	}

	f.logMutationError(f.filteredItems.Move(oldTargetIndex, newTargetIndex), obslist.Move)
}

func (f *Filter[T]) handleReplacementInItemsSource(change obslist.Change[T]) {
	if !f.passes(change.NewItem) {
		f.removeFilteredItem(change.OldItem)
		return
	}

	index := f.filteredItems.IndexOf(change.OldItem)
	if index < 0 {
		f.insertIntoFilteredItems(change.NewIndex, change.NewItem)
		return
	}

	f.logMutationError(f.filteredItems.Set(index, change.NewItem), obslist.Replace)
}

// insertIntoFilteredItems inserts item, located at sourceIndex in ItemsSource, at the translated position.
func (f *Filter[T]) insertIntoFilteredItems(sourceIndex int, item T) {
	f.logMutationError(f.filteredItems.Insert(f.TranslateSourceIndex(sourceIndex), item), obslist.Add)
}
