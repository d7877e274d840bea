package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"desksweep/internal/domain"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func awaitThumb(t *testing.T, p *Provider, id domain.FileID) domain.Thumbnail {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if thumb, ok := p.Get(id); ok {
			return thumb
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("thumbnail never appeared")
	return domain.Thumbnail{}
}

func TestProviderGeneratesScaledThumbnail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writePNG(t, path, 400, 100)

	p, err := NewProvider(1, 8, 64)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer p.Close()

	p.Request(domain.FileRecord{ID: "w", Path: path, Type: domain.FileTypeImage})
	thumb := awaitThumb(t, p, "w")

	// Longer edge capped at 64, aspect preserved.
	if thumb.Width != 64 || thumb.Height != 16 {
		t.Errorf("thumbnail = %dx%d, want 64x16", thumb.Width, thumb.Height)
	}
	decoded, err := png.Decode(bytes.NewReader(thumb.Data))
	if err != nil {
		t.Fatalf("thumbnail data is not PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != thumb.Width || b.Dy() != thumb.Height {
		t.Errorf("encoded bounds %v disagree with metadata %dx%d", b, thumb.Width, thumb.Height)
	}
}

func TestProviderSkipsSmallEnoughImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.png")
	writePNG(t, path, 20, 10)

	p, err := NewProvider(1, 8, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.Request(domain.FileRecord{ID: "t", Path: path, Type: domain.FileTypeImage})
	thumb := awaitThumb(t, p, "t")
	if thumb.Width != 20 || thumb.Height != 10 {
		t.Errorf("thumbnail = %dx%d, want original 20x10", thumb.Width, thumb.Height)
	}
}

func TestProviderIgnoresNonImages(t *testing.T) {
	p, err := NewProvider(1, 8, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.Request(domain.FileRecord{ID: "d", Path: "/nowhere.pdf", Type: domain.FileTypeDocument})
	time.Sleep(50 * time.Millisecond)
	if _, ok := p.Get("d"); ok {
		t.Error("thumbnail generated for a non-image")
	}
}

func TestProviderAbsorbsDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewProvider(1, 8, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.Request(domain.FileRecord{ID: "b", Path: path, Type: domain.FileTypeImage})
	time.Sleep(100 * time.Millisecond)
	if _, ok := p.Get("b"); ok {
		t.Error("thumbnail cached for an undecodable file")
	}

	// The pending slot is released, so a later request is accepted again.
	writePNG(t, path, 10, 10)
	p.Request(domain.FileRecord{ID: "b", Path: path, Type: domain.FileTypeImage})
	awaitThumb(t, p, "b")
}
