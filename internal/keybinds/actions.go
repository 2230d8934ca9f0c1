package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal Context = "global" // Available everywhere
	ContextNormal Context = "normal" // Moving between fields and buttons
	ContextForm   Context = "form"   // Editing a text field
	ContextResult Context = "result" // Scrolling the result area
	ContextHelp   Context = "help"   // Help overlay
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Tabs
	ActionNextTab  Action = "next_tab"  // Activate next tab
	ActionPrevTab  Action = "prev_tab"  // Activate previous tab
	ActionTabVoice Action = "tab_voice" // Jump to voice tab
	ActionTabSMS   Action = "tab_sms"   // Jump to SMS tab
	ActionTabTools Action = "tab_tools" // Jump to tools tab

	// Field navigation
	ActionFocusNext    Action = "focus_next"    // Move to next field or button
	ActionFocusPrev    Action = "focus_prev"    // Move to previous field or button
	ActionActivate     Action = "activate"      // Edit the field or press the button under the cursor
	ActionDropdownNext Action = "dropdown_next" // Next outgoing phone
	ActionDropdownPrev Action = "dropdown_prev" // Previous outgoing phone
	ActionSubmit       Action = "submit"        // Send the form of the active tab

	// Requests
	ActionTestKey  Action = "test_key"  // GET test-api-key
	ActionProfile  Action = "profile"   // GET get-profile
	ActionPhones   Action = "phones"    // GET get-phones
	ActionRecords  Action = "records"   // GET get-records
	ActionQuickSMS Action = "quick_sms" // Send the sample SMS

	// Editing
	ActionEditDone   Action = "edit_done"   // Leave the field, keeping its value
	ActionEditCancel Action = "edit_cancel" // Leave the field, restoring its value

	// Result area
	ActionFocusResult     Action = "focus_result"      // Move focus to the result area
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy result to clipboard
	ActionScrollUp        Action = "scroll_up"         // Scroll viewport up
	ActionScrollDown      Action = "scroll_down"       // Scroll viewport down
	ActionPageUp          Action = "page_up"           // Move up one page
	ActionPageDown        Action = "page_down"         // Move down one page
	ActionGoToTopPrepare  Action = "go_to_top_prepare" // First 'g' in 'gg' sequence
	ActionGoToTop         Action = "go_to_top"         // Go to top
	ActionGoToBottom      Action = "go_to_bottom"      // Go to bottom
	ActionCloseResult     Action = "close_result"      // Return focus to the panel

	// Other actions
	ActionOpenHelp  Action = "open_help"  // Toggle help overlay
	ActionCloseHelp Action = "close_help" // Close help overlay
	ActionNoOp      Action = "noop"       // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNextTab:         {ActionNextTab, "Next tab", "Tabs"},
	ActionPrevTab:         {ActionPrevTab, "Previous tab", "Tabs"},
	ActionTabVoice:        {ActionTabVoice, "Voice tab", "Tabs"},
	ActionTabSMS:          {ActionTabSMS, "SMS tab", "Tabs"},
	ActionTabTools:        {ActionTabTools, "Tools tab", "Tabs"},
	ActionFocusNext:       {ActionFocusNext, "Next field", "Navigation"},
	ActionFocusPrev:       {ActionFocusPrev, "Previous field", "Navigation"},
	ActionActivate:        {ActionActivate, "Edit field / press button", "Navigation"},
	ActionDropdownNext:    {ActionDropdownNext, "Next outgoing phone", "Navigation"},
	ActionDropdownPrev:    {ActionDropdownPrev, "Previous outgoing phone", "Navigation"},
	ActionSubmit:          {ActionSubmit, "Send form", "Requests"},
	ActionTestKey:         {ActionTestKey, "Test API key", "Requests"},
	ActionProfile:         {ActionProfile, "Get profile", "Requests"},
	ActionPhones:          {ActionPhones, "Get outgoing phones", "Requests"},
	ActionRecords:         {ActionRecords, "Get audio records", "Requests"},
	ActionQuickSMS:        {ActionQuickSMS, "Send test SMS", "Requests"},
	ActionEditDone:        {ActionEditDone, "Finish editing", "Editing"},
	ActionEditCancel:      {ActionEditCancel, "Cancel editing", "Editing"},
	ActionFocusResult:     {ActionFocusResult, "Focus result", "Result"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy result", "Result"},
	ActionScrollUp:        {ActionScrollUp, "Scroll up", "Result"},
	ActionScrollDown:      {ActionScrollDown, "Scroll down", "Result"},
	ActionPageUp:          {ActionPageUp, "Page up", "Result"},
	ActionPageDown:        {ActionPageDown, "Page down", "Result"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Result"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Result"},
	ActionCloseResult:     {ActionCloseResult, "Back to panel", "Result"},
	ActionOpenHelp:        {ActionOpenHelp, "Help", "Information"},
	ActionCloseHelp:       {ActionCloseHelp, "Close help", "Information"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether the action is handled by the terminal page
func IsKnownAction(action Action) bool {
	if action == ActionGoToTopPrepare || action == ActionNoOp {
		return true
	}
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
