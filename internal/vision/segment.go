package vision

// Blob is one 4-connected group of obstacle pixels found in a single frame.
// Blobs carry no identity from one frame to the next.
type Blob struct {
	Points []Point
}

// Size returns the number of pixels in the blob.
func (b Blob) Size() int {
	return len(b.Points)
}

// Centroid returns the mean position of the blob's pixels.
func (b Blob) Centroid() PointF {
	return Centroid(b.Points)
}

// Segmenter classifies frames and groups obstacle pixels into blobs.
// Its buffers are sized to the last frame seen and reused across ticks,
// so a Segmenter must not be shared between goroutines.
type Segmenter struct {
	palette   Palette
	scoreRows int // rows y <= scoreRows belong to the scoreboard

	width   int
	height  int
	cats    []Category
	visited []bool
	queue   []int
}

// NewSegmenter creates a segmenter for the given palette. Rows at or above
// scoreboardHeight are never classified.
func NewSegmenter(p Palette, scoreboardHeight int) *Segmenter {
	return &Segmenter{
		palette:   p,
		scoreRows: scoreboardHeight,
	}
}

// prepare classifies every pixel of f into s.cats and clears the visited marks.
func (s *Segmenter) prepare(f *Frame) {
	n := f.Width * f.Height
	if n != len(s.cats) {
		s.cats = make([]Category, n)
		s.visited = make([]bool, n)
		s.queue = make([]int, 0, 256)
	}
	s.width, s.height = f.Width, f.Height

	for y := 0; y < f.Height; y++ {
		row := y * f.Width
		for x := 0; x < f.Width; x++ {
			idx := row + x
			s.visited[idx] = false
			if y <= s.scoreRows {
				s.cats[idx] = CategoryBackground
				continue
			}
			p := idx * 3
			s.cats[idx] = s.palette.Classify(RGB{f.Pix[p], f.Pix[p+1], f.Pix[p+2]})
		}
	}
}

// Segment returns every obstacle blob in the frame. Each obstacle pixel
// belongs to exactly one blob.
func (s *Segmenter) Segment(f *Frame) []Blob {
	s.prepare(f)
	return s.segment()
}

// LocateShip returns the centroid of all ship pixels, or false when the ship
// is not visible in this frame.
func (s *Segmenter) LocateShip(f *Frame) (PointF, bool) {
	s.prepare(f)
	return s.locateShip()
}

// segment flood-fills the classified grid. A single frame-sized visited array
// guarantees each pixel is enqueued at most once no matter how many blobs exist.
func (s *Segmenter) segment() []Blob {
	var blobs []Blob
	for idx, c := range s.cats {
		if c != CategoryObstacle || s.visited[idx] {
			continue
		}
		blobs = append(blobs, s.fill(idx))
	}
	return blobs
}

// fill runs a breadth-first search from start over 4-connected obstacle pixels.
func (s *Segmenter) fill(start int) Blob {
	w, h := s.width, s.height
	q := s.queue[:0]
	q = append(q, start)
	s.visited[start] = true

	var points []Point
	for head := 0; head < len(q); head++ {
		idx := q[head]
		x, y := idx%w, idx/w
		points = append(points, Point{X: x, Y: y})

		// Right, left, below, above
		if x+1 < w {
			q = s.visit(q, idx+1)
		}
		if x > 0 {
			q = s.visit(q, idx-1)
		}
		if y+1 < h {
			q = s.visit(q, idx+w)
		}
		if y > 0 {
			q = s.visit(q, idx-w)
		}
	}
	s.queue = q
	return Blob{Points: points}
}

func (s *Segmenter) visit(q []int, idx int) []int {
	if s.visited[idx] || s.cats[idx] != CategoryObstacle {
		return q
	}
	s.visited[idx] = true
	return append(q, idx)
}

func (s *Segmenter) locateShip() (PointF, bool) {
	var sx, sy, n int
	for idx, c := range s.cats {
		if c != CategoryShip {
			continue
		}
		sx += idx % s.width
		sy += idx / s.width
		n++
	}
	if n == 0 {
		return PointF{}, false
	}
	return PointF{X: float64(sx) / float64(n), Y: float64(sy) / float64(n)}, true
}
