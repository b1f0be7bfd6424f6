package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func assertSamePixels(t *testing.T, expected, got image.Image) {
	t.Helper()
	if expected.Bounds().Size() != got.Bounds().Size() {
		t.Fatalf("Expected size %v, got %v", expected.Bounds().Size(), got.Bounds().Size())
	}
	eb, gb := expected.Bounds(), got.Bounds()
	for y := 0; y < eb.Dy(); y++ {
		for x := 0; x < eb.Dx(); x++ {
			er, eg, ebl, ea := expected.At(eb.Min.X+x, eb.Min.Y+y).RGBA()
			gr, gg, gbl, ga := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			if er != gr || eg != gg || ebl != gbl || ea != ga {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y,
					expected.At(eb.Min.X+x, eb.Min.Y+y), got.At(gb.Min.X+x, gb.Min.Y+y))
			}
		}
	}
}

func TestEncode_Formats(t *testing.T) {
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testImage(), format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			assertSamePixels(t, testImage(), decoded)
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "gif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		wantErr  bool
	}{
		{"render.png", FormatPNG, false},
		{"out/render.BMP", FormatBMP, false},
		{"render.tif", FormatTIFF, false},
		{"render.tiff", FormatTIFF, false},
		{"render.jpg", "", true},
		{"render", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if format != tt.expected {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, format, tt.expected)
			}
		})
	}
}

func TestSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "room", "render.png")
	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected saved file: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Saved file is not a PNG: %v", err)
	}
	assertSamePixels(t, testImage(), decoded)
}

func TestZoom(t *testing.T) {
	img := testImage()

	if Zoom(img, 1) != image.Image(img) {
		t.Error("Expected factor 1 to return the input image")
	}

	zoomed := Zoom(img, 3)
	if zoomed.Bounds().Dx() != 6 || zoomed.Bounds().Dy() != 6 {
		t.Fatalf("Expected 6x6 image, got %v", zoomed.Bounds())
	}

	// Each source pixel becomes a 3x3 block of the same color
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			er, eg, eb, _ := img.At(x/3, y/3).RGBA()
			gr, gg, gb, _ := zoomed.At(x, y).RGBA()
			if er != gr || eg != gg || eb != gb {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, img.At(x/3, y/3), zoomed.At(x, y))
			}
		}
	}
}
