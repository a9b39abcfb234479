package core

import "github.com/vovakirdan/asteroids-pilot/internal/vision"

// Color is the role of a screen cell. The platform layer maps roles to
// terminal colors. Higher values win when several roles share a cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorDim
	ColorHUD
	ColorRadius
	ColorObstacle
	ColorProjectile
	ColorShip
	ColorThreat
)

// ColorOf returns the cell role for a pixel category.
func ColorOf(c vision.Category) Color {
	switch c {
	case vision.CategoryShip:
		return ColorShip
	case vision.CategoryProjectile:
		return ColorProjectile
	case vision.CategoryObstacle:
		return ColorObstacle
	default:
		return ColorDefault
	}
}
