// Package record captures the transitions scheduled on a selection and
// turns them into a scrub function that can be evaluated at any time.
//
// Capture must run after the transitions of interest have been scheduled
// and before the scheduler has been allowed to tick them. Transitions
// scheduled after Capture are not seen by the resulting ScrubFunc.
//
// When several tweens write the same property of the same element, they
// are all applied in capture order and the last one wins.
package record

import (
	"fmt"
	"time"

	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/transition"
	"github.com/matt-g-everett/tweencap/util"
)

// Mode selects how the argument of a ScrubFunc is interpreted.
type Mode int

const (
	// Relative time in [0,1], fed to the ease unchanged.
	Relative Mode = iota
	// Realtime is absolute milliseconds, normalised per tween against its
	// delay and duration.
	Realtime
)

func (m Mode) String() string {
	switch m {
	case Relative:
		return "relative"
	case Realtime:
		return "realtime"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "relative" or "realtime".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "relative":
		return Relative, nil
	case "realtime", "":
		return Realtime, nil
	}
	return Relative, fmt.Errorf("unknown mode %q", s)
}

// A Source exposes the unfinished animations of an element.
type Source interface {
	Pending(e *scene.Element) []transition.Animation
}

// An Interrupter cancels live animation on a selection.
type Interrupter interface {
	Interrupt(sel scene.Selection)
}

// ScrubFunc applies every captured tween at time t.
type ScrubFunc func(t float64)

// Tweener is a captured tween with the timing of its animation. Delay and
// Duration are in milliseconds.
type Tweener struct {
	Node     scene.Node
	Fn       transition.TweenFunc
	Ease     transition.EaseFunc
	Duration float64
	Delay    float64
}

func noop(scene.Node, float64) {}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Normalise maps t to the tween's un-eased time for the given mode.
func (tw Tweener) Normalise(t float64, mode Mode) float64 {
	if mode == Relative {
		return t
	}
	if tw.Duration <= 0 {
		if t >= tw.Delay {
			return 1
		}
		return 0
	}
	return util.Clamp((t-tw.Delay)/tw.Duration, 0, 1)
}

// At runs the tween at time t.
func (tw Tweener) At(t float64, mode Mode) {
	tw.Fn(tw.Node, tw.Ease.Apply(tw.Normalise(t, mode)))
}

// Capture snapshots the tweens scheduled on every element of sel. Each
// factory is invoked exactly once. If any factory fails, no tweeners are
// returned.
func Capture(sel scene.Selection, src Source) ([]Tweener, error) {
	var tweeners []Tweener
	err := sel.EachErr(func(n scene.Node) error {
		for _, anim := range src.Pending(n.Element) {
			ease := anim.Ease
			if ease == nil {
				ease = transition.Identity
			}
			for _, tw := range anim.Tweens {
				fn, err := tw.Factory(n)
				if err != nil {
					return fmt.Errorf("capture %s/%s on %s: %w", anim.Name, tw.Name, n.Element.ID, err)
				}
				if fn == nil {
					fn = noop
				}
				tweeners = append(tweeners, Tweener{
					Node:     n,
					Fn:       fn,
					Ease:     ease,
					Duration: millis(anim.Duration),
					Delay:    millis(anim.Delay),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tweeners, nil
}

// Build returns a ScrubFunc over the captured tweeners. Every call first
// interrupts live animation on sel, then applies each tweener in order.
func Build(sel scene.Selection, intr Interrupter, tweeners []Tweener, mode Mode) ScrubFunc {
	return func(t float64) {
		intr.Interrupt(sel)
		for _, tw := range tweeners {
			tw.At(t, mode)
		}
	}
}

// Scheduler is what Record needs from the live scheduler.
type Scheduler interface {
	Source
	Interrupter
}

// Record captures the animations on sel and builds a ScrubFunc for them.
func Record(sel scene.Selection, sched Scheduler, mode Mode) (ScrubFunc, error) {
	tweeners, err := Capture(sel, sched)
	if err != nil {
		return nil, err
	}
	return Build(sel, sched, tweeners, mode), nil
}

// Span returns the end time in milliseconds of the latest tweener, the
// natural sampling domain for realtime scrubbing.
func Span(tweeners []Tweener) float64 {
	var end float64
	for _, tw := range tweeners {
		if e := tw.Delay + tw.Duration; e > end {
			end = e
		}
	}
	return end
}
