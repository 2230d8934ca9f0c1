// Package view holds the screen state shared by the terminal page:
// tabs, outgoing phone dropdowns and transient notices.
package view
