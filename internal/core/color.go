package core

// Color represents a foreground color role for a screen cell.
// The platform layer decides the actual terminal color for each role.
type Color uint8

// Color roles for game elements.
const (
	ColorDefault Color = iota
	ColorFlyer
	ColorBeak
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorGrass
	ColorHill
	ColorHUD
	ColorTitle
	ColorDim
	ColorAlert
)
