package transition

import (
	"fmt"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/tweencap/scene"
)

func node(e *scene.Element) scene.Node {
	return scene.Node{Element: e, Datum: e.Datum}
}

func TestAttrTween(t *testing.T) {
	e := scene.NewElement("a", nil, colorful.Color{})
	e.SetAttr("x", 10)

	fn, err := AttrTween("x", 20)(node(e))
	require.NoError(t, err)
	require.NotNil(t, fn)

	fn(node(e), 0.5)
	assert.InDelta(t, 15, e.Attr("x"), 1e-9)

	// The start value is fixed when the factory runs.
	fn(node(e), 1)
	assert.InDelta(t, 20, e.Attr("x"), 1e-9)
	fn(node(e), 0)
	assert.InDelta(t, 10, e.Attr("x"), 1e-9)
}

func TestAttrTween_Unchanged(t *testing.T) {
	e := scene.NewElement("a", nil, colorful.Color{})
	fn, err := AttrTween("x", 0)(node(e))
	require.NoError(t, err)
	assert.Nil(t, fn)
}

func TestColourTween(t *testing.T) {
	black := colorful.Color{}
	red := colorful.Color{R: 1}
	e := scene.NewElement("a", nil, black)

	fn, err := ColourTween(red)(node(e))
	require.NoError(t, err)
	require.NotNil(t, fn)

	fn(node(e), 1)
	assert.True(t, e.Colour().AlmostEqualRgb(red))
	fn(node(e), 0)
	assert.True(t, e.Colour().AlmostEqualRgb(black))

	same, err := ColourTween(e.Colour())(node(e))
	require.NoError(t, err)
	assert.Nil(t, same)
}

func TestGradientTween(t *testing.T) {
	e := scene.NewElement("a", nil, colorful.Hcl(0, 0.5, 0.5))
	g := GradientTable{{Hue: 0, Pos: 0}, {Hue: 180, Pos: 1}}

	fn, err := GradientTween(g)(node(e))
	require.NoError(t, err)

	fn(node(e), 0.5)
	assert.True(t, e.Colour().AlmostEqualRgb(colorful.Hcl(90, 0.5, 0.5).Clamped()))

	_, err = GradientTween(GradientTable{{Hue: 0}})(node(e))
	assert.Error(t, err)
}

func TestGradientTable_GetColor(t *testing.T) {
	g := GradientTable{{Hue: 10, Pos: 0.2}, {Hue: 20, Pos: 0.8}}
	assert.Equal(t, colorful.Hcl(10, 1, 0.5), g.GetColor(0.1, 1, 0.5))
	assert.True(t, colorful.Hcl(15, 1, 0.5).AlmostEqualRgb(g.GetColor(0.5, 1, 0.5)))
	assert.Equal(t, colorful.Hcl(20, 1, 0.5), g.GetColor(0.9, 1, 0.5))
}

func TestPulseTween(t *testing.T) {
	for _, steps := range []int{2, 3, 4, 5, 20, 21} {
		t.Run(fmt.Sprintf("steps=%d", steps), func(t *testing.T) {
			e := scene.NewElement("a", nil, colorful.Color{})
			e.SetAttr("glow", 0.25)
			fn, err := PulseTween("glow", 1, steps)(node(e))
			require.NoError(t, err)
			require.NotNil(t, fn)

			highest := 0.0
			for i := 0; i <= 1000; i++ {
				fn(node(e), float64(i)/1000)
				if v := e.Attr("glow"); v > highest {
					highest = v
				}
			}
			assert.Equal(t, 1.0, highest)

			fn(node(e), 0.5)
			assert.Equal(t, 1.0, e.Attr("glow"), "peak at the midpoint")
			fn(node(e), 0)
			assert.Equal(t, 0.25, e.Attr("glow"))
			fn(node(e), 1)
			assert.Equal(t, 0.25, e.Attr("glow"))
		})
	}
}

func TestPulseTween_Symmetric(t *testing.T) {
	e := scene.NewElement("a", nil, colorful.Color{})
	fn, err := PulseTween("glow", 1, 20)(node(e))
	require.NoError(t, err)

	fn(node(e), 0.3)
	rising := e.Attr("glow")
	fn(node(e), 0.7)
	assert.InDelta(t, rising, e.Attr("glow"), 1e-9)
	assert.Greater(t, rising, 0.0)
	assert.Less(t, rising, 1.0)
}

func TestDatumTween(t *testing.T) {
	e := scene.NewElement("a", 40, colorful.Color{})
	e.SetAttr("x", 20)
	n := scene.Node{Element: e, Datum: e.Datum}

	fn, err := DatumTween("x")(n)
	require.NoError(t, err)
	require.NotNil(t, fn)
	fn(n, 0.5)
	assert.InDelta(t, 30, e.Attr("x"), 1e-9)

	for _, datum := range []interface{}{nil, "forty", 30} {
		other := scene.NewElement("b", datum, colorful.Color{})
		other.SetAttr("x", 30)
		fn, err := DatumTween("x")(scene.Node{Element: other, Datum: datum})
		require.NoError(t, err)
		assert.Nil(t, fn, "datum %v", datum)
	}
}

func TestEase(t *testing.T) {
	fn, err := Ease("")
	require.NoError(t, err)
	assert.Equal(t, 0.3, fn(0.3))

	fn, err = Ease("in-quad")
	require.NoError(t, err)
	assert.InDelta(t, 0.09, fn(0.3), 1e-9)

	_, err = Ease("wobble")
	assert.Error(t, err)

	var unset EaseFunc
	assert.Equal(t, 0.7, unset.Apply(0.7))
	assert.Contains(t, EaseNames(), "in-out-quad")
}
