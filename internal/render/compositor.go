package render

import (
	"image"
	"image/color"

	"previewd/internal/assets"
)

// splitmix64 advances the deterministic value stream the compositor derives
// its palette from.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// paletteChannel maps a hash byte into a mid-range channel value so the
// composed shot never collapses to pure black or white.
func paletteChannel(v uint64) uint8 {
	return uint8(48 + v%160)
}

// compose rasterizes the CPU product shot for a scene: a tinted studio
// gradient, a faceted silhouette, and a ground shadow. Output depends only
// on the scene digest and the requested size, never on wall time, so the
// same asset always snapshots to the same pixels.
func compose(scene *assets.SceneHandle, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	state := scene.Digest64()

	top := color.RGBA{paletteChannel(splitmix64(&state)), paletteChannel(splitmix64(&state)), paletteChannel(splitmix64(&state)), 255}
	bottom := color.RGBA{top.R / 3, top.G / 3, top.B / 3, 255}
	body := color.RGBA{paletteChannel(splitmix64(&state)), paletteChannel(splitmix64(&state)), paletteChannel(splitmix64(&state)), 255}

	// Studio gradient.
	for y := 0; y < height; y++ {
		t := uint32(0)
		if height > 1 {
			t = uint32(y * 255 / (height - 1))
		}
		r := uint8((uint32(top.R)*(255-t) + uint32(bottom.R)*t) / 255)
		g := uint8((uint32(top.G)*(255-t) + uint32(bottom.G)*t) / 255)
		b := uint8((uint32(top.B)*(255-t) + uint32(bottom.B)*t) / 255)
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}

	cx, cy := width/2, height/2
	r := width
	if height < width {
		r = height
	}
	r = r * 3 / 8
	if r < 1 {
		r = 1
	}

	// Ground shadow under the silhouette.
	shadowY := cy + r + r/4
	for y := shadowY - r/6; y <= shadowY+r/6 && y < height; y++ {
		if y < 0 {
			continue
		}
		for x := cx - r; x <= cx+r && x < width; x++ {
			if x < 0 {
				continue
			}
			dx := float64(x-cx) / float64(r)
			dy := float64(y-shadowY) / (float64(r) / 6)
			if dx*dx+dy*dy > 1 {
				continue
			}
			p := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{p.R / 2, p.G / 2, p.B / 2, 255})
		}
	}

	// Faceted diamond silhouette: each quadrant is a differently lit facet,
	// which reads as a lit 3D object at thumbnail sizes.
	for y := cy - r; y <= cy+r; y++ {
		if y < 0 || y >= height {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= width {
				continue
			}
			dx, dy := x-cx, y-cy
			if abs(dx)+abs(dy) > r {
				continue
			}
			shade := uint32(100)
			switch {
			case dx >= 0 && dy < 0:
				shade = 255
			case dx < 0 && dy < 0:
				shade = 200
			case dx < 0 && dy >= 0:
				shade = 140
			}
			img.SetRGBA(x, y, color.RGBA{
				uint8(uint32(body.R) * shade / 255),
				uint8(uint32(body.G) * shade / 255),
				uint8(uint32(body.B) * shade / 255),
				255,
			})
		}
	}

	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
