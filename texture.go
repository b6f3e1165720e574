package pathtracer

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// maxTextureDimension caps the side of a loaded texture; anything larger
// is downsampled on load.
const maxTextureDimension = 2048

// Texture is an immutable 2D image sampled with wrapped bilinear
// interpolation, grounded on the BilinearSample contract sketched in
// advanced_texture.go's Texture interface.
type Texture struct {
	Width, Height int
	pixels        []Color
}

// NewSolidTexture returns a 1x1 texture, useful for tests and for
// materials that want a texture-shaped multiplier of (1,1,1,1).
func NewSolidTexture(c Color) *Texture {
	return &Texture{Width: 1, Height: 1, pixels: []Color{c}}
}

// NewTextureFromImage converts a decoded image.Image into a Texture,
// downsampling first if either dimension exceeds maxTextureDimension.
func NewTextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxTextureDimension || h > maxTextureDimension {
		img = resize.Thumbnail(maxTextureDimension, maxTextureDimension, img, resize.Bilinear)
		b = img.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	pixels := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pixels[y*w+x] = Color{
				R: float64(r) / 0xffff,
				G: float64(g) / 0xffff,
				B: float64(bl) / 0xffff,
				A: float64(a) / 0xffff,
			}
		}
	}
	return &Texture{Width: w, Height: h, pixels: pixels}
}

// LoadTexture decodes a texture file, dispatching on extension: PNG and
// JPEG via the stdlib image package, TGA via github.com/ftrvxmtrx/tga and
// BMP via golang.org/x/image/bmp (neither format has stdlib support).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		img, err = tga.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	default:
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, &AssetError{Path: path, Err: fmt.Errorf("decode texture: %w", err)}
	}
	return NewTextureFromImage(img), nil
}

func (t *Texture) at(x, y int) Color {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	return t.pixels[y*t.Width+x]
}

// BilinearSample samples the texture at UV, wrapping both coordinates
// modulo 1.
func (t *Texture) BilinearSample(u, v float64) Color {
	u = wrap01(u)
	v = wrap01(v)
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

func wrap01(x float64) float64 {
	x = x - math.Floor(x)
	if x < 0 {
		x++
	}
	return x
}
