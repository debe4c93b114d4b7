package site

// Nav is the mobile navigation menu. The toggle button and the link list
// share one open state.
type Nav struct {
	Open bool
}

func (n *Nav) Toggle() { n.Open = !n.Open }

// Follow is a click on a menu link; it always closes the menu.
func (n *Nav) Follow() { n.Open = false }

// Classes returns the CSS classes of the link list and of the toggle.
func (n *Nav) Classes() (links, toggle string) {
	if n.Open {
		return "open", "active"
	}
	return "", ""
}
