package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerFormBindings(r)
	registerResultBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings sets up keybindings for panel navigation
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)

	// Tabs
	r.RegisterMultiple(ContextNormal, []string{"tab", "]"}, ActionNextTab)
	r.RegisterMultiple(ContextNormal, []string{"shift+tab", "["}, ActionPrevTab)
	r.Register(ContextNormal, "1", ActionTabVoice)
	r.Register(ContextNormal, "2", ActionTabSMS)
	r.Register(ContextNormal, "3", ActionTabTools)

	// Fields
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionFocusNext)
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionFocusPrev)
	r.Register(ContextNormal, "enter", ActionActivate)
	r.RegisterMultiple(ContextNormal, []string{"right", "l"}, ActionDropdownNext)
	r.RegisterMultiple(ContextNormal, []string{"left", "h"}, ActionDropdownPrev)
	r.RegisterMultiple(ContextNormal, []string{"s", "ctrl+s"}, ActionSubmit)

	// Requests
	r.Register(ContextNormal, "t", ActionTestKey)
	r.Register(ContextNormal, "p", ActionProfile)
	r.Register(ContextNormal, "n", ActionPhones)
	r.Register(ContextNormal, "r", ActionRecords)
	r.Register(ContextNormal, "m", ActionQuickSMS)

	// Result
	r.Register(ContextNormal, "o", ActionFocusResult)
	r.Register(ContextNormal, "c", ActionCopyToClipboard)

	r.Register(ContextNormal, "?", ActionOpenHelp)
}

// registerFormBindings sets up keybindings while a text field is edited.
// Keys not bound here are passed to the field.
func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "esc", ActionEditCancel)
	r.Register(ContextForm, "enter", ActionEditDone)
	r.Register(ContextForm, "tab", ActionFocusNext)
	r.Register(ContextForm, "shift+tab", ActionFocusPrev)
	r.Register(ContextForm, "ctrl+s", ActionSubmit)
}

// registerResultBindings sets up keybindings for the result viewport
func registerResultBindings(r *Registry) {
	r.RegisterMultiple(ContextResult, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextResult, []string{"down", "j"}, ActionScrollDown)
	r.RegisterMultiple(ContextResult, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextResult, []string{"pgdown", "ctrl+d"}, ActionPageDown)
	r.Register(ContextResult, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextResult, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextResult, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextResult, "c", ActionCopyToClipboard)
	r.RegisterMultiple(ContextResult, []string{"esc", "o", "tab"}, ActionCloseResult)
	r.Register(ContextResult, "q", ActionQuit)
}

// registerHelpBindings sets up keybindings for the help overlay
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseHelp)
}
