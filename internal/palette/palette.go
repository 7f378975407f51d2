package palette

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/feyli/arctrace/internal/scene"
)

// Soft picks a random pastel: a free hue with muted chroma and high
// lightness, sampled in HCL so perceived brightness stays even across hues.
func Soft() scene.RGB {
	c := colorful.Hcl(rand.Float64()*360, 0.22, 0.82).Clamped()
	return scene.RGB{R: c.R, G: c.G, B: c.B}
}

// Luminous picks a brighter, more saturated color for the centerpiece.
func Luminous() scene.RGB {
	c := colorful.Hcl(rand.Float64()*360, 0.45, 0.72).Clamped()
	return scene.RGB{R: c.R, G: c.G, B: c.B}
}

// Blend mixes two colors in Luv space, which keeps midpoints from graying
// out the way plain RGB lerp does.
func Blend(a, b scene.RGB, t float64) scene.RGB {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	c := ca.BlendLuv(cb, t).Clamped()
	return scene.RGB{R: c.R, G: c.G, B: c.B}
}
