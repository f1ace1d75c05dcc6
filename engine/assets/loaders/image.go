package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Image is a decoded texture asset, always tightly packed rgba8.
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

// ImageLoader decodes png and jpeg files into rgba8 pixel data.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)
	return &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: dst.Pix,
	}, nil
}
