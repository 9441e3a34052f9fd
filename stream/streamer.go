package stream

import (
	"context"
	"log"
	"time"

	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/transition"
)

// Streamer plays a scene live against the wall clock and streams its frames
// to an ledrx device.
type Streamer struct {
	client Publisher
	topic  string
	sched  *transition.Scheduler
	sel    scene.Selection
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Publisher, sched *transition.Scheduler, sel scene.Selection) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = config.Mqtt.Topics.Stream
	s.sched = sched
	s.sel = sel
	return s
}

// SendFrame advances the scene and sends the frame as binary over MQTT.
func (s *Streamer) SendFrame() error {
	s.sched.Tick()
	return publishFrame(s.client, s.topic, 2, FrameOf(s.sel))
}

// Run sends frames on every interval until the scene has finished or ctx
// is done.
func (s *Streamer) Run(ctx context.Context, interval time.Duration) error {
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-publishTimer.C:
		}
		if err := s.SendFrame(); err != nil {
			return err
		}
		frames++
		if s.sched.Idle() {
			log.Printf("Scene finished after %d frames", frames)
			return nil
		}
	}
}
