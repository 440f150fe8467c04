package model

// Glyphs used by the selection screen.
// Single-width characters only, so row widths stay predictable.
const (
	IconCursor   = "▶"
	IconAutoboot = "★"
	IconNavigate = "↕"
	IconWarning  = "!"
)
