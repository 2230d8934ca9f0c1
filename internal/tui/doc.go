/*
Package tui implements the interactive terminal page of zvonocli.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, messages and the Update loop
  - init.go: Construction, layout of the panels and Run
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Requests, phone loading, clipboard and notifications
  - render.go: View rendering logic
  - sync_state.go: Thread-safe tracking of in-flight requests

# Panels

Three tabs map explicitly to three panels: voice, SMS and tools.
Each panel is a vertical list of fields and buttons. Text fields are
edited in place; dropdowns cycle through the outgoing phones.

# Requests

Every button is a control. Pressing it runs one request through the
executor dispatcher under that control's lock, so only the pressed button
is disabled while the request is in flight. Progress and results come back
as tea messages and are shown in the scrollable result area.
*/
package tui
