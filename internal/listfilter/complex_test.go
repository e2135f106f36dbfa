package listfilter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/listsync/listsync/internal/obslist"
	"github.com/listsync/listsync/internal/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterComplexCases(t *testing.T) {

	t.Run("moving an item to the beginning of the filtered items then making an item pass", func(t *testing.T) {
		f := filterWithNewItems(3, 4, 5, 6)
		itemToBeUpdated := f.ItemsSource().At(0)

		require.NoError(t, f.FilteredItems().Move(1, 0))

		itemToBeUpdated.Value = 2
		f.ItemsSource().ItemUpdate(itemToBeUpdated)

		assertItems(t, f.ItemsSource(), 6, 2, 4, 5)
		assertItems(t, f.FilteredItems(), 6, 2, 4)
		assert.True(t, f.Consistent())
	})

	t.Run("moving an item to the end of the filtered items then making an item pass", func(t *testing.T) {
		f := newFixture().filterWithItems(4, 5, 6, 7)
		itemToBeUpdated := f.ItemsSource().At(3)

		require.NoError(t, f.FilteredItems().Move(0, 1))

		itemToBeUpdated.Value = 8
		f.ItemsSource().ItemUpdate(itemToBeUpdated)

		assertItems(t, f.ItemsSource(), 5, 6, 8, 4)
		assertItems(t, f.FilteredItems(), 6, 8, 4)
		assert.True(t, f.Consistent())
	})

	t.Run("observer of the source mutating the source", func(t *testing.T) {
		f := filterWithNewItems(1, 2)

		//every added even item is followed by its successor
		f.ItemsSource().OnChange(func(change obslist.Change[*testItem]) {
			if change.Kind == obslist.Add && change.NewItem.Value%2 == 0 && change.NewItem.Value < 10 {
				f.ItemsSource().Add(&testItem{Value: change.NewItem.Value + 1})
			}
		})

		f.ItemsSource().Add(&testItem{Value: 4})

		assertItems(t, f.ItemsSource(), 1, 2, 4, 5)
		assertItems(t, f.FilteredItems(), 2, 4)
		assert.True(t, f.Consistent())
	})

	t.Run("observer of the filtered items removing an item after an addition", func(t *testing.T) {
		f := filterWithNewItems(1, 2, 3, 4)

		f.FilteredItems().OnChange(func(change obslist.Change[*testItem]) {
			if change.Kind == obslist.Add && change.NewItem.Value == 8 {
				assert.NoError(t, f.FilteredItems().RemoveAt(0))
			}
		})

		f.FilteredItems().Add(&testItem{Value: 8})

		assertItems(t, f.ItemsSource(), 1, 3, 4, 8)
		assertItems(t, f.FilteredItems(), 4, 8)
		assert.True(t, f.Consistent())
	})

	t.Run("observer of the filtered items removing an item after a move", func(t *testing.T) {
		f := filterWithNewItems(1, 2, 3, 4)

		f.FilteredItems().OnChange(func(change obslist.Change[*testItem]) {
			if change.Kind == obslist.Move {
				assert.NoError(t, f.FilteredItems().RemoveAt(0))
			}
		})

		require.NoError(t, f.FilteredItems().Move(0, 1))

		assertItems(t, f.ItemsSource(), 1, 3, 2)
		assertItems(t, f.FilteredItems(), 2)
		assert.True(t, f.Consistent())
	})

	t.Run("observer of the filtered items removing an item after a cancelled addition", func(t *testing.T) {
		f := filterWithNewItems(1, 2, 3, 4)

		f.FilteredItems().OnChange(func(change obslist.Change[*testItem]) {
			if change.Kind == obslist.Add && change.NewItem.Value == 5 {
				assert.NoError(t, f.FilteredItems().RemoveAt(0))
			}
		})

		f.FilteredItems().Add(&testItem{Value: 5})

		assertItems(t, f.ItemsSource(), 1, 3, 4)
		assertItems(t, f.FilteredItems(), 4)
		assert.True(t, f.Consistent())
	})
}

func TestFilterRandomChanges(t *testing.T) {
	const (
		seedCount       = 20
		stepsPerSeed    = 300
		maxValue        = 20
		initialItemSize = 10
	)

	isMultipleOfThree := func(item *testItem) bool { return item.Value%3 == 0 }

	for seed := int64(0); seed < seedCount; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			random := rand.New(rand.NewSource(seed))
			newItem := func() *testItem {
				return &testItem{Value: random.Intn(maxValue)}
			}

			logger := zerolog.New(&utils.TestWriter{T: t}).Level(zerolog.ErrorLevel)
			f := NewFilterWithConfig[*testItem](FilterConfig{Logger: &logger})
			f.SetFilterFunction(isEven)
			f.SetItemsSource(obslist.NewList[*testItem]())
			for i := 0; i < initialItemSize; i++ {
				f.ItemsSource().Add(newItem())
			}

			for step := 0; step < stepsPerSeed; step++ {
				source := f.ItemsSource()
				filtered := f.FilteredItems()

				var target *obslist.List[*testItem]
				if random.Intn(2) == 0 {
					target = source
				} else {
					target = filtered
				}

				operation := random.Intn(9)
				description := ""

				switch operation {
				case 0:
					description = "add"
					target.Add(newItem())
				case 1:
					index := random.Intn(target.Len() + 1)
					description = fmt.Sprintf("insert at %d", index)
					require.NoError(t, target.Insert(index, newItem()))
				case 2:
					if target.Len() == 0 {
						continue
					}
					index := random.Intn(target.Len())
					description = fmt.Sprintf("remove at %d", index)
					require.NoError(t, target.RemoveAt(index))
				case 3:
					if target.Len() == 0 {
						continue
					}
					oldIndex, newIndex := random.Intn(target.Len()), random.Intn(target.Len())
					description = fmt.Sprintf("move %d -> %d", oldIndex, newIndex)
					require.NoError(t, target.Move(oldIndex, newIndex))
				case 4:
					if target.Len() == 0 {
						continue
					}
					index := random.Intn(target.Len())
					description = fmt.Sprintf("set %d", index)
					require.NoError(t, target.Set(index, newItem()))
				case 5:
					if target.Len() == 0 {
						continue
					}
					index := random.Intn(target.Len())
					description = fmt.Sprintf("update %d", index)
					target.At(index).Value = random.Intn(maxValue)
					require.NoError(t, target.ItemUpdateAt(index))
				case 6:
					if random.Intn(10) != 0 {
						continue
					}
					description = "clear"
					target.Clear()
					if target == source {
						for i := 0; i < initialItemSize; i++ {
							source.Add(newItem())
						}
					}
				case 7:
					if random.Intn(5) != 0 {
						continue
					}
					description = "change filter function"
					if random.Intn(2) == 0 {
						f.SetFilterFunction(isEven)
					} else {
						f.SetFilterFunction(isMultipleOfThree)
					}
				case 8:
					if target.Len() == 0 {
						continue
					}
					description = "remove item"
					assert.True(t, target.Remove(target.At(random.Intn(target.Len()))))
				}

				if !f.Consistent() {
					t.Fatalf("step %d (%s on %s): filtered items %v are not consistent with items source %v",
						step, description, listName(f, target), values(filtered), values(source))
				}
			}
		})
	}
}

func listName(f *Filter[*testItem], l *obslist.List[*testItem]) string {
	if l == f.FilteredItems() {
		return "filtered items"
	}
	return "items source"
}
