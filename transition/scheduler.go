package transition

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/matt-g-everett/tweencap/scene"
)

type entry struct {
	anim    Animation
	node    scene.Node
	at      time.Time
	started bool
	tweens  []TweenFunc
}

// Schedule is the per-element state of the Scheduler. The bookkeeping
// fields are kept apart from the animation list.
type Schedule struct {
	Active  *Animation
	Count   int
	entries []*entry
}

// Animations returns the unfinished animations in scheduling order.
func (s *Schedule) Animations() []Animation {
	out := make([]Animation, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.anim
	}
	return out
}

// Scheduler runs animations on elements against a clock.
type Scheduler struct {
	mu        sync.Mutex
	now       func() time.Time
	order     []*scene.Element
	schedules map[*scene.Element]*Schedule
}

// NewScheduler creates an instance of a Scheduler. A nil clock means
// time.Now.
func NewScheduler(now func() time.Time) *Scheduler {
	s := new(Scheduler)
	if now == nil {
		now = time.Now
	}
	s.now = now
	s.schedules = make(map[*scene.Element]*Schedule)
	return s
}

// Schedule arms anim on every element of sel.
func (s *Scheduler) Schedule(sel scene.Selection, anim Animation) {
	s.ScheduleFunc(sel, func(scene.Node) Animation { return anim })
}

// ScheduleFunc arms one animation per element, built from the node. This
// is how per-element delays are expressed.
func (s *Scheduler) ScheduleFunc(sel scene.Selection, fn func(n scene.Node) Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	sel.Each(func(n scene.Node) {
		sch, ok := s.schedules[n.Element]
		if !ok {
			sch = new(Schedule)
			s.schedules[n.Element] = sch
			s.order = append(s.order, n.Element)
		}
		sch.entries = append(sch.entries, &entry{anim: fn(n), node: n, at: at})
		sch.Count++
	})
}

// Pending returns a snapshot of the unfinished animations on e.
func (s *Scheduler) Pending(e *scene.Element) []Animation {
	s.mu.Lock()
	defer s.mu.Unlock()

	sch, ok := s.schedules[e]
	if !ok {
		return nil
	}
	return sch.Animations()
}

// Interrupt cancels every pending and running animation on sel. It can be
// called any number of times.
func (s *Scheduler) Interrupt(sel scene.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range sel {
		s.remove(e)
	}
}

func (s *Scheduler) remove(e *scene.Element) {
	if _, ok := s.schedules[e]; !ok {
		return
	}
	delete(s.schedules, e)
	for i, o := range s.order {
		if o == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Idle reports whether there is no work left.
func (s *Scheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.schedules) == 0
}

// Tick advances every animation to the current clock time.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, e := range append([]*scene.Element(nil), s.order...) {
		sch := s.schedules[e]
		remaining := sch.entries[:0]
		for _, en := range sch.entries {
			if s.step(sch, en, now) {
				remaining = append(remaining, en)
			} else {
				sch.Count--
			}
		}
		sch.entries = remaining
		if len(sch.entries) == 0 {
			s.remove(e)
		}
	}
}

// step runs one entry and reports whether it is still live.
func (s *Scheduler) step(sch *Schedule, en *entry, now time.Time) bool {
	elapsed := now.Sub(en.at)
	if elapsed < en.anim.Delay {
		return true
	}

	if !en.started {
		en.started = true
		for _, tw := range en.anim.Tweens {
			fn, err := tw.Factory(en.node)
			if err != nil {
				log.Printf("Tween %s/%s on %s failed: %v", en.anim.Name, tw.Name, en.node.Element.ID, err)
				return false
			}
			if fn != nil {
				en.tweens = append(en.tweens, fn)
			}
		}
		sch.Active = &en.anim
	}

	t := en.anim.Progress(elapsed)
	eased := en.anim.Ease.Apply(t)
	for _, fn := range en.tweens {
		fn(en.node, eased)
	}

	if t >= 1 {
		if sch.Active == &en.anim {
			sch.Active = nil
		}
		return false
	}
	return true
}

// Run ticks the Scheduler on an interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}
