/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within contexts. The terminal page asks the registry
which action a key press means in its current context and falls back to
the global context when the specific one has no binding.

# Contexts

  - global: bindings available everywhere (ctrl+c)
  - normal: moving between tabs, fields and buttons
  - form: editing a text field; unbound keys are typed into the field
  - result: scrolling the result area
  - help: the help overlay

# Configuration File Format

User overrides live in ~/.zvonocli/keybinds.json. Each section maps a key
(or a comma separated list of keys) to an action:

	{
	  "version": "1.0",
	  "normal": {
	    "x": "submit",
	    "F5,ctrl+r": "phones"
	  },
	  "result": {
	    "y": "copy_to_clipboard"
	  }
	}

Overrides are merged over the defaults. `zvonocli keybinds init` writes the
defaults to the file as a starting point.

# Validation

The validator reports:
  - unknown action names (error)
  - rebinding ctrl+c (error)
  - "gg"-style sequences without a "g" prepare binding (warning)
  - context bindings that shadow a global one (warning)

# Multi-Key Sequences

MatchMultiKey supports "gg" for go-to-top in the result area: the first
"g" returns a partial match and the second completes the sequence.
*/
package keybinds
