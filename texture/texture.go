package texture

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Params controls sampling and orientation of an uploaded image.
type Params struct {
	Wrap   string // "repeat" (default), "clamp" or "mirror"
	Filter string // "linear" (default), "nearest" or "mipmap"
	// FlipY stores the image bottom row first, matching OpenGL's texture
	// coordinate origin.
	FlipY bool
}

// DefaultParams repeats, filters with mipmaps and flips, as the tutorial does.
var DefaultParams = Params{Wrap: "repeat", Filter: "mipmap", FlipY: true}

// Texture is a 2D OpenGL texture.
type Texture struct {
	id     uint32
	width  int32
	height int32
}

// Decode reads and decodes the image file at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	log.Printf("Loaded %s texture %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// Load decodes path and uploads it.
func Load(path string, params Params) (*Texture, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img, params)
}

// toRGBA converts img to tightly packed RGBA, flipping vertically if asked.
func toRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flipY {
		rgba = vflip(rgba)
	}
	return rgba
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// This is faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// FromImage uploads img as an RGBA8 texture.
func FromImage(img image.Image, params Params) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	rgba := toRGBA(img, params.FlipY)
	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	wrap := wrapMode(params.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	minFilter, magFilter := filterMode(params.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	// Rows of odd-width images are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if params.Filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{id: textureID, width: width, height: height}, nil
}

// Bind binds t to texture unit n.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Size() (int, int) { return int(t.width), int(t.height) }

func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.id)
}

func wrapMode(wrap string) int32 {
	switch wrap {
	case "clamp":
		return gl.CLAMP_TO_EDGE
	case "mirror":
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

func filterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case "nearest":
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}
