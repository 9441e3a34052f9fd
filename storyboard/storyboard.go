// Package storyboard loads a scene and its transitions from YAML.
package storyboard

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/transition"
)

// Document is the YAML form of a storyboard.
type Document struct {
	Elements    []ElementSpec    `yaml:"elements"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

type ElementSpec struct {
	ID     string             `yaml:"id"`
	Datum  interface{}        `yaml:"datum"`
	Colour string             `yaml:"colour"`
	Attrs  map[string]float64 `yaml:"attrs"`
}

// TransitionSpec describes one animation applied to a set of elements.
// Times are in milliseconds; each element is delayed by Delay plus
// Stagger times its index in the selection.
type TransitionSpec struct {
	Name     string      `yaml:"name"`
	Select   []string    `yaml:"select"`
	Ease     string      `yaml:"ease"`
	Duration float64     `yaml:"duration"`
	Delay    float64     `yaml:"delay"`
	Stagger  float64     `yaml:"stagger"`
	Tweens   []TweenSpec `yaml:"tweens"`
}

// TweenSpec holds exactly one of the tween kinds. An attr tween moves
// towards To, or towards the element's datum when ToDatum is set.
type TweenSpec struct {
	Attr     string                   `yaml:"attr"`
	To       *float64                 `yaml:"to"`
	ToDatum  bool                     `yaml:"toDatum"`
	Colour   string                   `yaml:"colour"`
	Gradient transition.GradientTable `yaml:"gradient"`
	Pulse    *PulseSpec               `yaml:"pulse"`
}

type PulseSpec struct {
	Attr  string  `yaml:"attr"`
	Peak  float64 `yaml:"peak"`
	Steps int     `yaml:"steps"`
}

// Load reads a storyboard file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a storyboard.
func Parse(data []byte) (*Document, error) {
	doc := new(Document)
	if err := yaml.UnmarshalStrict(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Build creates the elements of the storyboard. Elements without an id get
// a random one.
func (d *Document) Build() (scene.Selection, error) {
	sel := make(scene.Selection, 0, len(d.Elements))
	seen := make(map[string]bool)
	for i, spec := range d.Elements {
		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("element %d: duplicate id %q", i, id)
		}
		seen[id] = true

		colour := colorful.Color{}
		if spec.Colour != "" {
			c, err := colorful.Hex(spec.Colour)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", id, err)
			}
			colour = c
		}

		e := scene.NewElement(id, spec.Datum, colour)
		for name, v := range spec.Attrs {
			e.SetAttr(name, v)
		}
		sel = append(sel, e)
	}
	return sel, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

type armed struct {
	sel  scene.Selection
	anim func(n scene.Node) transition.Animation
}

// Schedule arms every transition of the storyboard on sel. Nothing is
// scheduled if any transition is invalid.
func (d *Document) Schedule(sel scene.Selection, sched *transition.Scheduler) error {
	all := make([]armed, 0, len(d.Transitions))
	for i, spec := range d.Transitions {
		a, err := spec.arm(sel)
		if err != nil {
			name := spec.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("transition %s: %w", name, err)
		}
		all = append(all, a)
	}

	for _, a := range all {
		sched.ScheduleFunc(a.sel, a.anim)
	}
	return nil
}

func (spec TransitionSpec) arm(sel scene.Selection) (armed, error) {
	target, err := spec.target(sel)
	if err != nil {
		return armed{}, err
	}
	ease, err := transition.Ease(spec.Ease)
	if err != nil {
		return armed{}, err
	}
	if spec.Duration < 0 || spec.Delay < 0 || spec.Stagger < 0 {
		return armed{}, fmt.Errorf("negative timing")
	}

	tweens := make([]transition.Tween, 0, len(spec.Tweens))
	for j, ts := range spec.Tweens {
		tw, err := ts.tween()
		if err != nil {
			return armed{}, fmt.Errorf("tween %d: %w", j, err)
		}
		tweens = append(tweens, tw)
	}

	return armed{sel: target, anim: func(n scene.Node) transition.Animation {
		return transition.Animation{
			Name:     spec.Name,
			Ease:     ease,
			Duration: millis(spec.Duration),
			Delay:    millis(spec.Delay + spec.Stagger*float64(n.Index)),
			Tweens:   tweens,
		}
	}}, nil
}

func (spec TransitionSpec) target(sel scene.Selection) (scene.Selection, error) {
	if len(spec.Select) == 0 {
		return sel, nil
	}
	target := make(scene.Selection, 0, len(spec.Select))
	for _, id := range spec.Select {
		e, ok := sel.Find(id)
		if !ok {
			return nil, fmt.Errorf("unknown element %q", id)
		}
		target = append(target, e)
	}
	return target, nil
}

func (ts TweenSpec) tween() (transition.Tween, error) {
	var tweens []transition.Tween
	if ts.Attr != "" || ts.To != nil || ts.ToDatum {
		if ts.Attr == "" || (ts.To == nil) == !ts.ToDatum {
			return transition.Tween{}, fmt.Errorf("attr tween needs attr and one of to, toDatum")
		}
		factory := transition.DatumTween(ts.Attr)
		if ts.To != nil {
			factory = transition.AttrTween(ts.Attr, *ts.To)
		}
		tweens = append(tweens, transition.Tween{Name: "attr." + ts.Attr, Factory: factory})
	}
	if ts.Colour != "" {
		c, err := colorful.Hex(ts.Colour)
		if err != nil {
			return transition.Tween{}, err
		}
		tweens = append(tweens, transition.Tween{Name: "colour", Factory: transition.ColourTween(c)})
	}
	if len(ts.Gradient) > 0 {
		if len(ts.Gradient) < 2 {
			return transition.Tween{}, fmt.Errorf("gradient needs at least two stops")
		}
		tweens = append(tweens, transition.Tween{Name: "gradient", Factory: transition.GradientTween(ts.Gradient)})
	}
	if ts.Pulse != nil {
		if ts.Pulse.Attr == "" || ts.Pulse.Steps < 2 {
			return transition.Tween{}, fmt.Errorf("pulse needs attr and at least two steps")
		}
		tweens = append(tweens, transition.Tween{
			Name:    "pulse." + ts.Pulse.Attr,
			Factory: transition.PulseTween(ts.Pulse.Attr, ts.Pulse.Peak, ts.Pulse.Steps),
		})
	}

	if len(tweens) != 1 {
		return transition.Tween{}, fmt.Errorf("expected exactly one of attr, colour, gradient, pulse")
	}
	return tweens[0], nil
}
