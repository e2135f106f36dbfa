package scenario

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {

	t.Run("valid scenario", func(t *testing.T) {
		s, err := Load(strings.NewReader(`
name: test
source: [1, 2]
predicate: odd
steps:
  - {list: source, op: add, args: [3]}
  - {list: filtered, op: clear, expect: {filtered: [1, 3]}}
  - {op: filter, predicate: "mod:3:0"}
  - {op: detach}
  - {op: attach}
`))
		require.NoError(t, err)

		assert.Equal(t, "test", s.Name)
		assert.Equal(t, []int{1, 2}, s.Source)
		assert.Equal(t, "odd", s.Predicate)
		require.Len(t, s.Steps, 5)
		assert.Equal(t, Step{List: SOURCE_LIST_NAME, Op: ADD_OP, Args: []int{3}}, s.Steps[0])
		assert.Equal(t, []int{1, 3}, s.Steps[1].Expect.Filtered)
		assert.Nil(t, s.Steps[1].Expect.Source)
		assert.Equal(t, "mod:3:0", s.Steps[2].Predicate)
	})

	t.Run("default predicate", func(t *testing.T) {
		s, err := Load(strings.NewReader("source: [1]\n"))
		require.NoError(t, err)
		assert.Equal(t, DEFAULT_PREDICATE, s.Predicate)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(strings.NewReader("source: [1]\nfilter: even\n"))
		assert.Error(t, err)
	})

	t.Run("unknown predicate", func(t *testing.T) {
		_, err := Load(strings.NewReader("predicate: prime\n"))
		assert.ErrorIs(t, err, ErrUnknownPredicate)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - {list: source, op: sort}\n"))
		assert.ErrorIs(t, err, ErrUnknownOperation)
		assert.ErrorContains(t, err, "step 1")
	})

	t.Run("invalid list", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - {list: other, op: add, args: [1]}\n"))
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - {list: source, op: move, args: [1]}\n"))
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("arguments passed to a filter operation", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - {op: detach, args: [1]}\n"))
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("predicate passed to a list operation", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - {list: source, op: clear, predicate: even}\n"))
		assert.ErrorIs(t, err, ErrInvalidStep)
	})
}

func TestLoadFile(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "even.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "even items", s.Name)
	assert.Len(t, s.Steps, 6)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "move 0 2 on filtered", Step{List: FILTERED_LIST_NAME, Op: MOVE_OP, Args: []int{0, 2}}.String())
	assert.Equal(t, "clear on source", Step{List: SOURCE_LIST_NAME, Op: CLEAR_OP}.String())
	assert.Equal(t, "filter gt:3", Step{Op: FILTER_OP, Predicate: "gt:3"}.String())
	assert.Equal(t, "detach", Step{Op: DETACH_OP}.String())
}
