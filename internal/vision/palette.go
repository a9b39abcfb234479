// Package vision turns raw RGB observation frames into the objects the pilot
// reasons about: ship pixels, projectiles and obstacle blobs.
// It has no dependencies outside the standard library so it stays pure and testable.
package vision

import "fmt"

// RGB is a single pixel color. Colors are compared as exact integer triples.
type RGB [3]uint8

// String returns the color as "r,g,b".
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// Category is the class a pixel falls into.
type Category uint8

const (
	CategoryBackground Category = iota
	CategoryShip
	CategoryProjectile
	CategoryObstacle
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryBackground:
		return "Background"
	case CategoryShip:
		return "Ship"
	case CategoryProjectile:
		return "Projectile"
	case CategoryObstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// Palette holds the three reference colors the game renders with.
// Every other color is an obstacle.
type Palette struct {
	Ship       RGB
	Projectile RGB
	Background RGB
}

// Reference colors used by the arcade video mode.
var (
	ShipColor       = RGB{240, 128, 128}
	ProjectileColor = RGB{117, 181, 239}
	BackgroundColor = RGB{0, 0, 0}
)

// DefaultPalette returns the palette of the stock game.
func DefaultPalette() Palette {
	return Palette{
		Ship:       ShipColor,
		Projectile: ProjectileColor,
		Background: BackgroundColor,
	}
}

// Classify maps a color to its category. It is total: any color that is not
// one of the three reference colors is an obstacle, including visual effects
// the game draws in other colors.
func (p Palette) Classify(c RGB) Category {
	switch c {
	case p.Ship:
		return CategoryShip
	case p.Projectile:
		return CategoryProjectile
	case p.Background:
		return CategoryBackground
	default:
		return CategoryObstacle
	}
}
