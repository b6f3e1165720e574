// Package imageio encodes a rendered frame to disk, dispatching on the
// output path's extension.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	pathtracer "github.com/swordkee/pathtracer"
)

// Save writes img to path, dispatching on its extension: .png (stdlib
// image/png), .jpg/.jpeg (stdlib image/jpeg, quality 95), and .webp
// (github.com/HugoSmits86/nativewebp).
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &pathtracer.OutputError{Path: path, Err: err}
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = fmt.Errorf("unsupported output extension %q", ext)
	}
	if err != nil {
		return &pathtracer.OutputError{Path: path, Err: err}
	}
	return nil
}
