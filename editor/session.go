// Package editor holds one editing session: the loaded image, the shape
// sequence that defines the selection, the palette settings and the
// rendered output.
//
// Every edit rebuilds the selection from the full shape sequence and
// re-renders the output. Output buffers are replaced, never modified in
// place, so a buffer returned by Output stays valid and unchanged.
package editor

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"pixelart/mask"
	"pixelart/palette"
	"pixelart/pixelate"
	"pixelart/quantize"
	"pixelart/viewport"
)

var (
	ErrNoImage        = errors.New("no image loaded")
	ErrEmptySelection = errors.New("nothing selected")
	ErrBusy           = errors.New("a model load or stylization is already running")
	ErrNoModel        = errors.New("no stylization model loaded")
	ErrGestureActive  = errors.New("a shape is already being drawn")
	ErrStale          = errors.New("image or selection changed while the model was running")
)

type Session struct {
	logger *slog.Logger
	pix    *pixelate.Pixelator

	mu       sync.Mutex
	source   *image.NRGBA
	ops      []mask.Op
	sel      mask.Selection
	settings Settings
	palette  palette.Palette
	output   *image.NRGBA
	// gen counts source loads and shape edits.
	gen uint64

	view    viewport.Transform
	tool    Tool
	mode    mask.Mode
	draft   *draft
	panning *viewport.Pan

	stylizer Stylizer
	busy     atomic.Bool
}

type Option func(*Session)

// WithLogger sets the session logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPixelator replaces the pixelation engine, for example to inject a
// different dithering function.
func WithPixelator(p *pixelate.Pixelator) Option {
	return func(s *Session) {
		if p != nil {
			s.pix = p
		}
	}
}

// WithStylizer installs a stylizer without going through a ModelLoader.
func WithStylizer(st Stylizer) Option {
	return func(s *Session) { s.stylizer = st }
}

func New(opts ...Option) *Session {
	s := &Session{
		logger:   slog.Default(),
		pix:      pixelate.New(),
		settings: DefaultSettings(),
		view:     viewport.Identity(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the source image. The shape sequence is reset; the palette
// and settings are kept.
func (s *Session) Load(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = pixelate.Clone(img)
	s.gen++
	s.ops = nil
	s.draft = nil
	s.panning = nil
	s.view = viewport.Identity()
	s.sel = mask.Compile(nil, s.source.Rect.Dx(), s.source.Rect.Dy())
	s.logger.Info("image loaded", "width", s.source.Rect.Dx(), "height", s.source.Rect.Dy())
	s.render()
}

// Loaded reports whether an image is loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source != nil
}

// Source returns the loaded image, or nil.
func (s *Session) Source() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Output returns the current rendered buffer, or nil before Load.
func (s *Session) Output() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

func (s *Session) Selection() mask.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Shapes returns a copy of the committed shape sequence.
func (s *Session) Shapes() []mask.Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mask.Op(nil), s.ops...)
}

func (s *Session) Palette() palette.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// AddShape commits op to the end of the shape sequence.
func (s *Session) AddShape(op mask.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return ErrNoImage
	}
	s.ops = append(s.ops, op)
	s.recompile()
	return nil
}

// SetShapes replaces the whole shape sequence and recompiles once.
func (s *Session) SetShapes(ops []mask.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return ErrNoImage
	}
	s.ops = append([]mask.Op(nil), ops...)
	s.recompile()
	return nil
}

// Undo drops the last committed shape. It reports whether there was one.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ops) == 0 {
		return false
	}
	s.ops = s.ops[:len(s.ops)-1]
	s.recompile()
	return true
}

// Clear drops every committed shape.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
	if s.source != nil {
		s.recompile()
	}
}

// ApplySettings clamps settings, rebuilds the palette and re-renders. On
// error the previous settings and palette stay in effect.
func (s *Session) ApplySettings(settings Settings) error {
	settings = settings.Clamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	var pal palette.Palette
	switch settings.PaletteMode {
	case PaletteNone:
	case PaletteFixed:
		var err error
		if pal, err = palette.LoadPalette(settings.PaletteName); err != nil {
			return fmt.Errorf("could not apply palette settings: %w", err)
		}
	case PaletteKMeans:
		if s.source == nil {
			return ErrNoImage
		}
		pal = s.kmeans(settings)
	default:
		return fmt.Errorf("unsupported palette mode: %v", settings.PaletteMode)
	}

	s.settings = settings
	s.palette = pal
	s.logger.Info("palette applied", "mode", settings.PaletteMode, "colors", len(pal),
		"block", settings.BlockSize, "dither", settings.Dither)

	if s.source != nil {
		s.render()
	}
	return nil
}

// kmeans clusters the colours of the source shrunk to block resolution, so
// the palette reflects the blocks that will actually be quantized.
func (s *Session) kmeans(settings Settings) palette.Palette {
	b := s.source.Bounds()
	w, h := pixelate.GridSize(b.Dx(), b.Dy(), settings.BlockSize)
	small := quantize.Shrink(s.source, w, h)

	opts := quantize.Options{}
	if settings.Seed != 0 {
		opts.Rand = quantize.NewRand(settings.Seed)
	}
	return quantize.FromImage(small, settings.K, opts)
}

func (s *Session) recompile() {
	s.gen++
	b := s.source.Bounds()
	s.sel = mask.Compile(s.ops, b.Dx(), b.Dy())
	s.render()
}

func (s *Session) render() {
	s.output = s.pix.Pixelate(s.source, pixelate.Params{
		BlockSize: s.settings.BlockSize,
		Palette:   s.palette,
		Dither:    s.settings.Dither,
		Scope:     s.settings.Scope,
	}, s.sel)
}
