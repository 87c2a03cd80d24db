package imageio

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-band-raytracer/pkg/renderer"
)

// WriteFile saves fb to path. The format follows the extension: ".png" writes
// PNG, ".zst" writes zstd-compressed PPM, anything else writes plain PPM.
func WriteFile(path string, fb *renderer.Framebuffer) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(file, fb.ToRGBA())
	case ".zst":
		return EncodePPMZstd(file, fb)
	default:
		return EncodePPM(file, fb.Width, fb.Height, fb.Pix)
	}
}

// EncodePPMZstd writes fb as a zstd-compressed PPM stream
func EncodePPMZstd(w io.Writer, fb *renderer.Framebuffer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := EncodePPM(enc, fb.Width, fb.Height, fb.Pix); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadPPMFile loads a PPM written by WriteFile, decompressing ".zst" files
func ReadPPMFile(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	return DecodePPM(r)
}
