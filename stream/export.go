package stream

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/eclipse/paho.mqtt.golang"
)

// An Exporter persists one sampled frame.
type Exporter interface {
	Export(index int, t float64, f *Frame) error
}

// PNGDir writes each frame to its own numbered PNG file.
type PNGDir struct {
	Dir   string
	Scale int
}

func (p *PNGDir) Export(index int, t float64, f *Frame) error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(p.Dir, fmt.Sprintf("frame-%04d.png", index))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, f.Image(p.Scale)); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// PNGStream writes the frames back to back as PNG images, ready to be
// piped into an encoder such as ffmpeg's image2pipe.
type PNGStream struct {
	W     io.Writer
	Scale int
}

func (p *PNGStream) Export(index int, t float64, f *Frame) error {
	return png.Encode(p.W, f.Image(p.Scale))
}

// Publisher is the part of an MQTT client used to send frames.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTExporter sends frames in the binary frame format to an ledrx device.
type MQTTExporter struct {
	Client Publisher
	Topic  string
	QoS    byte
}

func (m *MQTTExporter) Export(index int, t float64, f *Frame) error {
	return publishFrame(m.Client, m.Topic, m.QoS, f)
}

func publishFrame(client Publisher, topic string, qos byte, f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := client.Publish(topic, qos, false, b)
	token.Wait()
	return token.Error()
}
