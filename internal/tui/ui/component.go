package ui

// MenuHint is one key binding listed in the header menu.
type MenuHint struct {
	Key         string
	Description string
}

// Component is a screen the app can push. Init runs once, before the first
// visit. Start and Stop bracket every visit: a screen covered by another is
// stopped, and started again when it comes back to the top.
type Component interface {
	Name() string
	Init()
	Start()
	Stop()
	Hints() []MenuHint
}

// Titled is implemented by screens whose breadcrumb should read differently
// from their page name.
type Titled interface {
	Title() string
}
