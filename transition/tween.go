package transition

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/util"
)

// AttrTween interpolates a numeric attribute from its value when the
// factory runs to the target value. Attributes already at the target
// produce no tween.
func AttrTween(name string, to float64) Factory {
	return func(n scene.Node) (TweenFunc, error) {
		from := n.Element.Attr(name)
		if from == to {
			return nil, nil
		}
		return func(n scene.Node, t float64) {
			n.Element.SetAttr(name, util.Lerp(from, to, t))
		}, nil
	}
}

// ColourTween blends the element colour towards the target in HCL space.
func ColourTween(to colorful.Color) Factory {
	return func(n scene.Node) (TweenFunc, error) {
		from := n.Element.Colour()
		if from == to {
			return nil, nil
		}
		return func(n scene.Node, t float64) {
			n.Element.SetColour(from.BlendHcl(to, t).Clamped())
		}, nil
	}
}

// PulseTween raises a numeric attribute towards peak and back down again
// over the course of the animation. The rise is quantised to an eased
// look-up table of the given number of steps; the peak is reached at the
// midpoint whatever the step count.
func PulseTween(name string, peak float64, steps int) Factory {
	lut := util.GenerateLut(steps)
	return func(n scene.Node) (TweenFunc, error) {
		if len(lut) < 2 {
			return nil, nil
		}
		base := n.Element.Attr(name)
		return func(n scene.Node, t float64) {
			rise := 1 - math.Abs(2*util.Clamp(t, 0, 1)-1)
			i := int(math.Round(rise * float64(len(lut)-1)))
			n.Element.SetAttr(name, util.Lerp(base, peak, lut[i]))
		}, nil
	}
}

// DatumTween interpolates a numeric attribute towards the element's datum.
// Elements whose datum is not a number, or already equals the attribute,
// produce no tween.
func DatumTween(name string) Factory {
	return func(n scene.Node) (TweenFunc, error) {
		to, ok := number(n.Datum)
		if !ok {
			return nil, nil
		}
		return AttrTween(name, to)(n)
	}
}

func number(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
