package listfilter

// internalChange prevents a change forwarded by a filter from being forwarded back
// to the list it originates from.
type internalChange struct {
	executing bool
}

// Execute calls fn unless an execution is already in progress, in which case nothing happens.
func (c *internalChange) Execute(fn func()) {
	if c.executing {
		return
	}

	c.executing = true
	defer func() {
		c.executing = false
	}()

	fn()
}
