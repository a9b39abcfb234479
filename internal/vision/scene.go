package vision

// Scene is everything the pilot extracts from one frame.
type Scene struct {
	Ship      PointF
	ShipFound bool
	Blobs     []Blob
	Centroids []PointF

	// Projectiles is the number of projectile-colored pixels.
	Projectiles int
}

// Scan classifies the frame once, locates the ship and segments obstacles.
func (s *Segmenter) Scan(f *Frame) Scene {
	s.prepare(f)

	var scene Scene
	scene.Ship, scene.ShipFound = s.locateShip()
	scene.Blobs = s.segment()
	scene.Centroids = make([]PointF, len(scene.Blobs))
	for i, b := range scene.Blobs {
		scene.Centroids[i] = b.Centroid()
	}
	for _, c := range s.cats {
		if c == CategoryProjectile {
			scene.Projectiles++
		}
	}
	return scene
}

// Category returns the category assigned to (x, y) by the last scan.
// Scoreboard rows and out-of-range coordinates report Background.
func (s *Segmenter) Category(x, y int) Category {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return CategoryBackground
	}
	return s.cats[y*s.width+x]
}
