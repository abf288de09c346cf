package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Global
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)

	// Browsing (normal chart view)
	r.RegisterMultiple(ContextBrowsing, []string{"q", "esc"}, ActionQuit)
	r.RegisterMultiple(ContextBrowsing, []string{"ctrl+o", "o"}, ActionOpenTicker)
	r.RegisterMultiple(ContextBrowsing, []string{"ctrl+s", "s"}, ActionSettings)
	r.Register(ContextBrowsing, "y", ActionYank)
	r.Register(ContextBrowsing, "h", ActionToggleHeader)
	r.Register(ContextBrowsing, "r", ActionRefetch)

	// Ticker prompt
	r.Register(ContextPrompt, "esc", ActionCancel)
	r.Register(ContextPrompt, "enter", ActionConfirm)
	r.RegisterMultiple(ContextPrompt, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextPrompt, []string{"down", "ctrl+n"}, ActionNavigateDown)

	// Settings menus
	r.RegisterMultiple(ContextSettings, []string{"esc", "q"}, ActionCancel)
	r.RegisterMultiple(ContextSettings, []string{"enter", " "}, ActionConfirm)
	r.RegisterMultiple(ContextSettings, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSettings, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextSettings, "backspace", ActionBack)

	return r
}
