package ui

import "testing"

func TestCrumbsLabels(t *testing.T) {
	c := NewCrumbs(DefaultTheme())
	c.Update([]string{"home", "new-message"})
	if got := c.GetText(true); got != " home  ›  new-message " {
		t.Errorf("text = %q", got)
	}

	c.SetLabeler(func(name string) string {
		if name == "new-message" {
			return "New Message"
		}
		return "Conversations"
	})
	c.Update([]string{"home", "new-message"})
	if got := c.GetText(true); got != " Conversations  ›  New Message " {
		t.Errorf("labelled text = %q", got)
	}

	c.Update(nil)
	if got := c.GetText(true); got != "" {
		t.Errorf("empty stack text = %q", got)
	}
}
