package transition

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// An EaseFunc remaps normalised time in [0,1] to [0,1].
type EaseFunc func(t float64) float64

// Identity is the default ease.
func Identity(t float64) float64 { return t }

var eases = map[string]EaseFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
}

// Ease looks up a named easing curve. An empty name is the identity.
func Ease(name string) (EaseFunc, error) {
	if name == "" {
		return Identity, nil
	}
	fn, ok := eases[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}

// EaseNames lists the known ease names.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for name := range eases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// orIdentity returns fn, or Identity if fn is unset.
func (fn EaseFunc) orIdentity() EaseFunc {
	if fn == nil {
		return Identity
	}
	return fn
}

// Apply evaluates the ease, treating a nil ease as the identity.
func (fn EaseFunc) Apply(t float64) float64 {
	return fn.orIdentity()(t)
}
