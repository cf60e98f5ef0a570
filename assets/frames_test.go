package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// writeFrames renders n frames into dir using the default pattern.
func writeFrames(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, filepath.FromSlash(FramePath(DefaultFramePattern, i)))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, pngBytes(t, uint8(i)), 0o644); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
}

func TestFramePath(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "/render/ronit_Wedding_00000.png"},
		{7, "/render/ronit_Wedding_00007.png"},
		{50, "/render/ronit_Wedding_00050.png"},
		{134, "/render/ronit_Wedding_00134.png"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.index), func(t *testing.T) {
			if got := FramePath(DefaultFramePattern, c.index); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestFramesPathRange(t *testing.T) {
	f := &Frames{Pattern: DefaultFramePattern, Total: 135}
	for _, index := range []int{-1, 135, 500} {
		if _, err := f.Path(index); !errors.Is(err, ErrFrameOutOfRange) {
			t.Fatalf("index %d: expected ErrFrameOutOfRange, got %v", index, err)
		}
	}
	if _, err := f.Path(134); err != nil {
		t.Fatalf("last frame should be valid: %v", err)
	}
}

func TestFramesIndex(t *testing.T) {
	f := &Frames{Pattern: DefaultFramePattern, Total: 135}
	if i, ok := f.Index("/render/ronit_Wedding_00042.png"); !ok || i != 42 {
		t.Fatalf("expected 42, got %d ok=%v", i, ok)
	}
	for _, name := range []string{
		"/render/ronit_Wedding_00135.png",
		"/render/ronit_Wedding_42.png",
		"/render/other.png",
	} {
		if _, ok := f.Index(name); ok {
			t.Fatalf("%s should not map to a frame", name)
		}
	}
}

func TestFramesDecode(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 3)
	src, err := NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	f := &Frames{Source: src, Pattern: DefaultFramePattern, Total: 135}

	img, err := f.Decode(context.Background(), 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	if _, err := f.Decode(context.Background(), 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing frame should be ErrNotFound, got %v", err)
	}
}
