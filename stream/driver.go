package stream

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/matt-g-everett/tweencap/record"
	"github.com/matt-g-everett/tweencap/scene"
)

// SampleTimes returns frames+1 evenly spaced times covering the whole
// domain, both ends included. The domain is [0, duration] milliseconds in
// realtime mode and [0, 1] in relative mode.
func SampleTimes(duration float64, frames int, mode record.Mode) []float64 {
	if frames < 1 {
		return []float64{0}
	}
	span := duration
	if mode == record.Relative {
		span = 1
	}
	times := make([]float64, frames+1)
	for i := range times {
		times[i] = span * float64(i) / float64(frames)
	}
	return times
}

// Driver samples a scrub function and exports a frame per sample.
type Driver struct {
	Scrub     record.ScrubFunc
	Selection scene.Selection
	Exporter  Exporter
	Mode      record.Mode
	// Duration in milliseconds, ignored in relative mode.
	Duration float64
	Frames   int
	// Interval paces the samples. Zero renders as fast as possible.
	Interval time.Duration
}

// Report summarises a Driver run.
type Report struct {
	RunID  string
	Frames int
}

// Run exports every sample in order. The first failed export stops the run.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	if d.Frames < 1 {
		return rep, fmt.Errorf("frame count must be positive, got %d", d.Frames)
	}

	times := SampleTimes(d.Duration, d.Frames, d.Mode)
	log.Printf("Run %s: %d frames over %v (%s)", rep.RunID, len(times), d.domain(), d.Mode)

	var tick <-chan time.Time
	if d.Interval > 0 {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i, t := range times {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return rep, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return rep, err
		}

		d.Scrub(t)
		if err := d.Exporter.Export(i, t, FrameOf(d.Selection)); err != nil {
			return rep, fmt.Errorf("frame %d at %v: %w", i, t, err)
		}
		rep.Frames++
	}

	log.Printf("Run %s: done", rep.RunID)
	return rep, nil
}

func (d *Driver) domain() string {
	if d.Mode == record.Relative {
		return "[0,1]"
	}
	return fmt.Sprintf("%vms", d.Duration)
}
