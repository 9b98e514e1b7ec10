package editor

import (
	"context"
	"errors"
	"fmt"
	"image"

	"pixelart/pixelate"
)

// Stylizer replaces the pixels of a region. region is a crop of the source
// image to the selection's bounding box; the result must have the same size.
type Stylizer interface {
	Stylize(ctx context.Context, region *image.NRGBA) (*image.NRGBA, error)
}

// StylizerFunc adapts a function to Stylizer.
type StylizerFunc func(ctx context.Context, region *image.NRGBA) (*image.NRGBA, error)

func (f StylizerFunc) Stylize(ctx context.Context, region *image.NRGBA) (*image.NRGBA, error) {
	return f(ctx, region)
}

// ModelLoader fetches a stylization model by reference, such as a URL.
type ModelLoader interface {
	Load(ctx context.Context, ref string) (Stylizer, error)
}

// Busy reports whether a model load or stylization is running.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// LoadModel loads a stylizer through loader. It fails with ErrBusy while
// another load or stylization runs. On error the previous model is kept.
func (s *Session) LoadModel(ctx context.Context, loader ModelLoader, ref string) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	st, err := loader.Load(ctx, ref)
	if err != nil {
		s.logger.Error("could not load model", "model", ref, "error", err)
		return fmt.Errorf("could not load model %q: %w", ref, err)
	}
	if st == nil {
		return fmt.Errorf("could not load model %q: %w", ref, ErrNoModel)
	}

	s.mu.Lock()
	s.stylizer = st
	s.mu.Unlock()
	s.logger.Info("model loaded", "model", ref)
	return nil
}

// Stylize runs the stylizer on the selection's bounding box of the source
// image and paints the result into the output wherever the selection is set,
// making those pixels opaque. Nothing is called when the selection is empty.
// On any failure, including cancellation of ctx, the output is left as it
// was.
func (s *Session) Stylize(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoImage
	}
	if s.stylizer == nil {
		s.mu.Unlock()
		return ErrNoModel
	}
	sel, st, src, gen := s.sel, s.stylizer, s.source, s.gen
	bbox := sel.BoundingBox()
	if bbox.Empty() {
		s.mu.Unlock()
		s.logger.Warn("stylization skipped", "reason", "empty selection", "selection", sel.State())
		return ErrEmptySelection
	}
	region := pixelate.Clone(s.source.SubImage(bbox))
	s.mu.Unlock()

	res, err := st.Stylize(ctx, region)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Error("stylization failed", "error", err)
		}
		return fmt.Errorf("stylization failed: %w", err)
	}
	if res == nil || res.Bounds().Size() != bbox.Size() {
		var got image.Point
		if res != nil {
			got = res.Bounds().Size()
		}
		return fmt.Errorf("stylization returned %v pixels for a %v region", got, bbox.Size())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source != src || s.gen != gen {
		s.logger.Warn("stylization discarded", "reason", "image or selection changed")
		return ErrStale
	}

	out := pixelate.Clone(s.output)
	rb := res.Bounds()
	for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
		for x := bbox.Min.X; x < bbox.Max.X; x++ {
			if !sel.Selected(x, y) {
				continue
			}
			src := res.Pix[res.PixOffset(rb.Min.X+x-bbox.Min.X, rb.Min.Y+y-bbox.Min.Y):]
			dst := out.Pix[out.PixOffset(x, y):]
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xff
		}
	}
	s.output = out
	s.logger.Info("stylization applied", "region", bbox)
	return nil
}
