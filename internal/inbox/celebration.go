package inbox

// Celebration tracks whether the Inbox Zero celebration is showing.
// It fires once per continuous streak of IsInboxZero with at least one email,
// and re-arms only when the inbox stops being zero. Not safe for concurrent use.
type Celebration struct {
	celebrating bool
	fired       bool
}

// Observe feeds the latest progress and reports whether the celebration fired now
func (c *Celebration) Observe(p Progress) bool {
	if !p.IsInboxZero {
		c.celebrating = false
		c.fired = false
		return false
	}
	if p.TotalEmails == 0 || c.fired {
		return false
	}
	c.fired = true
	c.celebrating = true
	return true
}

// Dismiss hides the celebration without re-arming it
func (c *Celebration) Dismiss() {
	c.celebrating = false
}

// Celebrating reports whether the celebration is showing
func (c *Celebration) Celebrating() bool {
	return c.celebrating
}
