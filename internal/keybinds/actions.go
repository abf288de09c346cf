package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal   Context = "global"   // Available everywhere
	ContextBrowsing Context = "browsing" // Normal chart view
	ContextPrompt   Context = "prompt"   // Open-ticker prompt
	ContextSettings Context = "settings" // Settings menus
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Browsing actions
	ActionOpenTicker   Action = "open_ticker"   // Open the ticker prompt
	ActionSettings     Action = "settings"      // Open the settings menu
	ActionYank         Action = "yank"          // Copy the stats line
	ActionToggleHeader Action = "toggle_header" // Show/hide the header
	ActionRefetch      Action = "refetch"       // Re-dispatch the current selection

	// Overlay actions
	ActionNavigateUp   Action = "navigate_up"   // Move up one item
	ActionNavigateDown Action = "navigate_down" // Move down one item
	ActionConfirm      Action = "confirm"       // Confirm selection
	ActionCancel       Action = "cancel"        // Close overlay unchanged
	ActionBack         Action = "back"          // Back to the parent menu
)

// knownActions is the set of action names accepted in override files.
var knownActions = map[Action]bool{
	ActionQuit:         true,
	ActionQuitForce:    true,
	ActionOpenTicker:   true,
	ActionSettings:     true,
	ActionYank:         true,
	ActionToggleHeader: true,
	ActionRefetch:      true,
	ActionNavigateUp:   true,
	ActionNavigateDown: true,
	ActionConfirm:      true,
	ActionCancel:       true,
	ActionBack:         true,
}

// KnownAction reports whether name is a valid action.
func KnownAction(name string) bool {
	return knownActions[Action(name)]
}
