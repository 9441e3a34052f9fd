package stream

import (
    "fmt"
    "os"

    "gopkg.in/yaml.v2"
)

// Config is the YAML configuration file.
type Config struct {
    Scene string `yaml:"scene"`
    Render struct {
        Mode string `yaml:"mode"`
        Duration float64 `yaml:"duration"`
        Frames int `yaml:"frames"`
        Interval float64 `yaml:"interval"`
        Output string `yaml:"output"`
        Dir string `yaml:"dir"`
        Scale int `yaml:"scale"`
    } `yaml:"render"`
    Api struct {
        Listen string `yaml:"listen"`
    } `yaml:"api"`
    Mqtt struct {
        URL string `yaml:"url"`
        ClientID string `yaml:"clientID"`
        Username string `yaml:"username"`
        Password string `yaml:"password"`
        Topics struct {
            Stream string `yaml:"stream"`
        } `yaml:"topics"`
    } `yaml:"mqtt"`
}

// DefaultConfig renders 50 frames as PNGs on stdout.
func DefaultConfig() Config {
    var c Config
    c.Scene = "scene.yaml"
    c.Render.Mode = "realtime"
    c.Render.Frames = 50
    c.Render.Output = "stdout"
    c.Render.Dir = "frames"
    c.Render.Scale = 10
    c.Api.Listen = ":3000"
    c.Mqtt.ClientID = "tweencap"
    c.Mqtt.Topics.Stream = "home/xmastree/stream"
    return c
}

// ReadConfig decodes a config file over the defaults. A missing file
// leaves the defaults in place.
func ReadConfig(path string) (Config, error) {
    c := DefaultConfig()
    f, err := os.Open(path)
    if os.IsNotExist(err) {
        return c, nil
    } else if err != nil {
        return c, err
    }
    defer f.Close()

    decoder := yaml.NewDecoder(f)
    decoder.SetStrict(true)
    if err := decoder.Decode(&c); err != nil {
        return c, fmt.Errorf("%s: %w", path, err)
    }
    return c, nil
}
