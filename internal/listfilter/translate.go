package listfilter

// TranslateSourceIndex returns the index in FilteredItems corresponding to sourceIndex: the position
// right after the closest passing item that precedes sourceIndex in ItemsSource, or 0 if there is none.
func (f *Filter[T]) TranslateSourceIndex(sourceIndex int) int {
	referenceIndex := sourceIndex - 1
	for referenceIndex >= 0 && !f.passes(f.itemsSource.At(referenceIndex)) {
		referenceIndex--
	}

	if referenceIndex < 0 {
		return 0
	}

	referenceItem := f.itemsSource.At(referenceIndex)
	return f.filteredItems.IndexOf(referenceItem) + 1
}

// TranslateTargetIndex returns the index in ItemsSource corresponding to targetIndex, an index in FilteredItems.
// The item at targetIndex+referencePosition in FilteredItems is used as reference: referencePosition is -1 for
// insertions and the direction of the move for moves.
func (f *Filter[T]) TranslateTargetIndex(targetIndex int, referencePosition int) int {
	if targetIndex == 0 {
		return 0
	}

	if targetIndex+referencePosition >= f.filteredItems.Len() {
		return f.itemsSource.Len() - 1
	}

	referenceItem := f.filteredItems.At(targetIndex + referencePosition)
	referenceIndex := f.itemsSource.IndexOf(referenceItem)
	if referenceIndex < 0 {
		return 0
	}
	return referenceIndex - referencePosition
}
