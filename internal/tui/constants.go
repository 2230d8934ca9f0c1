package tui

import "time"

// UI Layout Constants
const (
	// Width of the label column in panels
	LabelWidth = 12

	// Horizontal space taken by the panel border, padding and cursor
	PanelChromeWidth = 8

	// Lines used by tabs, borders, notices and the status bar around the result area
	ChromeLines = 9

	// Visible lines of a text area while editing
	TextAreaHeight = 4

	// The result area never shrinks below this
	MinResultHeight = 5

	// Status messages are truncated to this many runes in the footer
	StatusMaxLen = 100
)

// StatusTimeout is how long footer messages stay when no notification duration is set
const StatusTimeout = 3 * time.Second
