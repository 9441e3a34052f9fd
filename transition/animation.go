package transition

import (
	"time"

	"github.com/matt-g-everett/tweencap/scene"
)

// A TweenFunc performs one side effect on a node given an eased time.
type TweenFunc func(n scene.Node, t float64)

// A Factory prepares a TweenFunc for one node. It is called once, when the
// animation starts or when it is captured. A nil TweenFunc with a nil error
// means there is nothing to interpolate for this node.
type Factory func(n scene.Node) (TweenFunc, error)

// Tween is a named interpolation factory.
type Tween struct {
	Name    string
	Factory Factory
}

// An Animation is a set of tweens sharing an ease, a duration and a delay.
type Animation struct {
	Name     string
	Ease     EaseFunc
	Duration time.Duration
	Delay    time.Duration
	Tweens   []Tween
}

// Progress maps the time elapsed since scheduling to normalised time,
// saturating at 0 before the delay and at 1 after the end.
func (a Animation) Progress(elapsed time.Duration) float64 {
	if elapsed < a.Delay {
		return 0
	}
	if a.Duration <= 0 {
		return 1
	}
	t := float64(elapsed-a.Delay) / float64(a.Duration)
	if t > 1 {
		return 1
	}
	return t
}
