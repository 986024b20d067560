package search

// Keyboard navigation over the last published result list. The active index
// is a cursor that wraps circularly modulo the list length; -1 means no
// active item.

// MoveDown advances the cursor, wrapping to the top past the last item.
// Returns the new active index, or -1 when there are no results.
func (c *Client) MoveDown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.results)
	if n == 0 {
		c.active = -1
		return -1
	}
	c.active = (c.active + 1) % n
	return c.active
}

// MoveUp moves the cursor backwards, wrapping to the bottom before the
// first item. Returns the new active index, or -1 when there are no results.
func (c *Client) MoveUp() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.results)
	if n == 0 {
		c.active = -1
		return -1
	}
	if c.active <= 0 {
		c.active = n - 1
	} else {
		c.active--
	}
	return c.active
}

// ActiveIndex returns the cursor position, -1 when nothing is active.
func (c *Client) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Enter selects the active item, or the first item when nothing is active.
func (c *Client) Enter() {
	c.mu.Lock()
	index := c.active
	if index < 0 {
		index = 0
	}
	c.mu.Unlock()

	c.SelectResult(index)
}

// Escape closes the result panel without clearing the query text.
func (c *Client) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.active = -1
}
