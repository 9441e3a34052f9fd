package transition

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/tweencap/scene"
)

// GradientStop is one key point of a GradientTable.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c1.Hue, c, l)
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	if t < g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l)
	}
	// Past the last key point.
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}

// GradientTween sweeps the element colour along the gradient, keeping the
// chroma and luminance the element had when the factory ran.
func GradientTween(g GradientTable) Factory {
	return func(n scene.Node) (TweenFunc, error) {
		if len(g) < 2 {
			return nil, fmt.Errorf("gradient needs at least two stops, got %d", len(g))
		}
		_, c, l := n.Element.Colour().Hcl()
		return func(n scene.Node, t float64) {
			n.Element.SetColour(g.GetColor(t, c, l).Clamped())
		}, nil
	}
}
