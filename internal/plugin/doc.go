// Package plugin adapts the reading-speed metrics to a subtitle editor's
// scripting contract.
//
// The editor calls a fixed set of named hooks when the selected subtitle
// changes or is edited, and asks for the title, size, text and background
// color of extra grid columns while repainting. Plugin implements those
// callbacks on top of metrics.Calculator and pushes the status line through
// the Host interface.
package plugin
