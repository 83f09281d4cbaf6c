package formats

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/png"
	"io"

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// DecodeImage reads a raster maze. Every pixel becomes one tile; a pixel
// whose color is not in the palette fails with *InvalidTileColorError.
func DecodeImage(r io.Reader, p Palette) ([][]maze.Tile, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	rows := make([][]maze.Tile, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		rows[y] = make([]maze.Tile, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			tile, ok := p[c]
			if !ok {
				return nil, &InvalidTileColorError{X: x, Y: y, Color: c}
			}
			rows[y][x] = tile
		}
	}
	return rows, nil
}

// EncodePNG writes g as a one-pixel-per-tile PNG using palette p.
func EncodePNG(w io.Writer, g *maze.Grid, p Palette) error {
	img := image.NewNRGBA(image.Rect(0, 0, g.W(), g.H()))
	for y, row := range g.Rows() {
		for x, t := range row {
			c, ok := p.ColorOf(t)
			if !ok {
				return &maze.ConfigurationError{Op: "encode png", Reason: fmt.Sprintf("palette has no color for %s", t)}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return png.Encode(w, img)
}

// ImageExtensions returns the supported raster extensions.
func ImageExtensions() []string {
	return []string{".png", ".gif", ".bmp"}
}
