package imgio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"pixelart/palette"
)

func TestOutputType(t *testing.T) {
	tests := []struct {
		imgType, outType, want string
	}{
		{"webp", "unsup:png", "png"},
		{"jpeg", "unsup:png", "jpeg"},
		{"gif", "same", "gif"},
		{"png", "bmp", "bmp"},
	}
	for _, tt := range tests {
		if got := OutputType(tt.imgType, tt.outType); got != tt.want {
			t.Errorf("OutputType(%q,%q): expected %q, got %q", tt.imgType, tt.outType, tt.want, got)
		}
	}
}

func TestDestName(t *testing.T) {
	if got := DestName("/a/b/cat.photo.jpeg", "_sprites16", "png"); got != "cat.photo_sprites16.png" {
		t.Errorf("expected cat.photo_sprites16.png, got %s", got)
	}
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 0x0f, G: 0x38, B: 0x0f, A: 0xff})
	gb, _ := palette.Fixed("gameboy")

	if err := Save(img, "png", dir, "out.png", gb, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, imgType, err := Open(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imgType != "png" {
		t.Errorf("expected png, got %s", imgType)
	}
	if _, ok := got.(*image.Paletted); !ok {
		t.Errorf("expected paletted image, got %T", got)
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 0x0f || g>>8 != 0x38 || b>>8 != 0x0f {
		t.Errorf("expected #0f380f, got %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestEncodeFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for _, f := range Formats {
		var buf bytes.Buffer
		if err := Encode(&buf, img, f, nil, false); err != nil {
			t.Errorf("%s: unexpected error: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: expected output", f)
		}
	}
	if err := Encode(io.Discard, img, "xcf", nil, false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestEncodeTrueColorByDefault(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	bw, _ := palette.Fixed("bw")
	var buf bytes.Buffer
	if err := Encode(&buf, img, "png", bw, false); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dec.(*image.Paletted); ok {
		t.Error("expected true color PNG")
	}
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	err := WriteFile(dir, "x.png", func(w io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty folder, got %d entries", len(entries))
	}
}
