package listfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalChange(t *testing.T) {

	t.Run("nested executions are skipped", func(t *testing.T) {
		var c internalChange
		var calls []string

		c.Execute(func() {
			calls = append(calls, "outer")

			c.Execute(func() {
				calls = append(calls, "inner")
			})
		})

		assert.Equal(t, []string{"outer"}, calls)

		c.Execute(func() {
			calls = append(calls, "next")
		})
		assert.Equal(t, []string{"outer", "next"}, calls)
	})

	t.Run("sequential executions", func(t *testing.T) {
		var c internalChange
		count := 0

		c.Execute(func() { count++ })
		c.Execute(func() { count++ })

		assert.Equal(t, 2, count)
	})

	t.Run("flag is released after a panic", func(t *testing.T) {
		var c internalChange

		assert.Panics(t, func() {
			c.Execute(func() {
				panic("boom")
			})
		})

		called := false
		c.Execute(func() { called = true })
		assert.True(t, called)
	})
}
