// Package replay feeds recorded frames from disk to the pilot, one file per
// tick. Frames may be PNG or BMP.
package replay

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// ID is the registry identifier of the replay environment.
const ID = "replay"

var (
	// ErrEmptyReplay is returned when a directory holds no frame files.
	ErrEmptyReplay = errors.New("replay: no frames found")
	// ErrFrameSize is returned when a frame does not match the video mode.
	ErrFrameSize = errors.New("replay: frame size mismatch")
)

// Env replays a directory of frames. Actions are recorded but have no effect.
type Env struct {
	dir    string
	files  []string
	width  int
	height int
	lives  int

	pos     int
	actions []pilot.Action
}

func init() {
	registry.Register(ID, "Recorded frames", func(opts registry.Options) (registry.Env, error) {
		if opts.FramesDir == "" {
			return nil, fmt.Errorf("replay: a frames directory is required")
		}
		return New(opts.FramesDir, opts.Config)
	})
}

// New scans dir for frame files in lexical order.
func New(dir string, cfg config.PilotConfig) (*Env, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsFrameFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyReplay, dir)
	}
	sort.Strings(files)

	return &Env{
		dir:    dir,
		files:  files,
		width:  cfg.Frame.Width,
		height: cfg.Frame.Height,
		lives:  cfg.Ship.StartLives,
	}, nil
}

// IsFrameFile reports whether name has a supported image extension.
func IsFrameFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".bmp":
		return true
	}
	return false
}

// LoadFrame decodes one image file. When width and height are positive the
// image must match them exactly.
func LoadFrame(path string, width, height int) (*vision.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot decode %s: %w", path, err)
	}

	b := img.Bounds()
	if width > 0 && height > 0 && (b.Dx() != width || b.Dy() != height) {
		return nil, fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
			ErrFrameSize, path, b.Dx(), b.Dy(), width, height)
	}
	return vision.FrameFromImage(img), nil
}

// ID returns the environment identifier.
func (e *Env) ID() string {
	return ID
}

// Title returns the display name.
func (e *Env) Title() string {
	return "Replay " + filepath.Base(e.dir)
}

// Score is always zero; recordings carry no score.
func (e *Env) Score() int {
	return 0
}

// Len returns the number of frames.
func (e *Env) Len() int {
	return len(e.files)
}

// Actions returns the actions received so far, one per replayed frame.
func (e *Env) Actions() []pilot.Action {
	return e.actions
}

// Reset rewinds to the first frame. The seed is ignored.
func (e *Env) Reset(int64) (registry.Observation, error) {
	e.pos = 0
	e.actions = e.actions[:0]
	return e.load(false)
}

// Step records the action and moves to the next frame. The step taken on
// the last frame ends the replay, so every frame receives one action.
func (e *Env) Step(a pilot.Action) (registry.Observation, error) {
	e.actions = append(e.actions, a)
	if e.pos == len(e.files)-1 {
		return e.load(true)
	}
	e.pos++
	return e.load(false)
}

func (e *Env) load(done bool) (registry.Observation, error) {
	frame, err := LoadFrame(e.files[e.pos], e.width, e.height)
	if err != nil {
		return registry.Observation{}, err
	}
	return registry.Observation{
		Frame: frame,
		Done:  done,
		Lives: e.lives,
	}, nil
}
