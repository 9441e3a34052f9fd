package main

import (
    "context"
    "fmt"
    "log"
    "os"
    "os/signal"
    "path/filepath"
    "time"

    "github.com/eclipse/paho.mqtt.golang"
    "github.com/spf13/cobra"

    "github.com/matt-g-everett/tweencap/api"
    "github.com/matt-g-everett/tweencap/record"
    "github.com/matt-g-everett/tweencap/scene"
    "github.com/matt-g-everett/tweencap/storyboard"
    "github.com/matt-g-everett/tweencap/stream"
    "github.com/matt-g-everett/tweencap/transition"
)

type app struct {
    Config stream.Config
    Client mqtt.Client

    configPath string
    sel scene.Selection
    sched *transition.Scheduler
    span float64
}

func newApp() *app {
    a := new(app)
    return a
}

func (a *app) readConfig() error {
    c, err := stream.ReadConfig(a.configPath)
    if err != nil {
        return err
    }
    a.Config = c
    log.Printf("Config: %+v", a.Config.Render)
    return nil
}

// loadScene reads the storyboard and schedules its transitions. The scene
// file is resolved relative to the config file.
func (a *app) loadScene() error {
    path := a.Config.Scene
    if !filepath.IsAbs(path) {
        path = filepath.Join(filepath.Dir(a.configPath), path)
    }

    doc, err := storyboard.Load(path)
    if err != nil {
        return err
    }
    sel, err := doc.Build()
    if err != nil {
        return err
    }

    a.sched = transition.NewScheduler(nil)
    if err := doc.Schedule(sel, a.sched); err != nil {
        return err
    }
    a.sel = sel
    log.Printf("Loaded %d elements, %d transitions from %s", len(sel), len(doc.Transitions), path)
    return nil
}

// duration is the configured render duration, or the length of the
// recorded scene.
func (a *app) duration() float64 {
    if a.Config.Render.Duration > 0 {
        return a.Config.Render.Duration
    }
    if a.span > 0 {
        return a.span
    }
    return 2000
}

func (a *app) record() (record.ScrubFunc, record.Mode, error) {
    mode, err := record.ParseMode(a.Config.Render.Mode)
    if err != nil {
        return nil, mode, err
    }
    tweeners, err := record.Capture(a.sel, a.sched)
    if err != nil {
        return nil, mode, fmt.Errorf("record scene: %w", err)
    }
    a.span = record.Span(tweeners)
    log.Printf("Recorded %d tweens over %vms", len(tweeners), a.span)
    return record.Build(a.sel, a.sched, tweeners, mode), mode, nil
}

func (a *app) connect() error {
    mqtt.ERROR = log.New(os.Stderr, "", 0)

    options := mqtt.NewClientOptions().
        AddBroker(a.Config.Mqtt.URL).
        SetClientID(a.Config.Mqtt.ClientID).
        SetUsername(a.Config.Mqtt.Username).
        SetPassword(a.Config.Mqtt.Password).
        SetKeepAlive(30 * time.Second).
        SetPingTimeout(5 * time.Second).
        SetOnConnectHandler(func(mqtt.Client) { log.Println("Connected") })
    a.Client = mqtt.NewClient(options)

    if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
        return token.Error()
    }
    return nil
}

func (a *app) exporter() (stream.Exporter, error) {
    r := a.Config.Render
    switch r.Output {
    case "stdout":
        return &stream.PNGStream{W: os.Stdout, Scale: r.Scale}, nil
    case "png":
        return &stream.PNGDir{Dir: r.Dir, Scale: r.Scale}, nil
    case "mqtt":
        if err := a.connect(); err != nil {
            return nil, err
        }
        return &stream.MQTTExporter{Client: a.Client, Topic: a.Config.Mqtt.Topics.Stream, QoS: 2}, nil
    }
    return nil, fmt.Errorf("unknown output %q", r.Output)
}

func (a *app) render(ctx context.Context) error {
    if err := a.loadScene(); err != nil {
        return err
    }
    scrub, mode, err := a.record()
    if err != nil {
        return err
    }
    exp, err := a.exporter()
    if err != nil {
        return err
    }
    if a.Client != nil {
        defer a.Client.Disconnect(250)
    }

    d := &stream.Driver{
        Scrub: scrub,
        Selection: a.sel,
        Exporter: exp,
        Mode: mode,
        Duration: a.duration(),
        Frames: a.Config.Render.Frames,
        Interval: time.Duration(a.Config.Render.Interval * float64(time.Millisecond)),
    }
    rep, err := d.Run(ctx)
    if err != nil {
        return err
    }
    log.Printf("Wrote %d frames (run %s)", rep.Frames, rep.RunID)
    return nil
}

func (a *app) serve() error {
    if err := a.loadScene(); err != nil {
        return err
    }
    scrub, mode, err := a.record()
    if err != nil {
        return err
    }
    return api.NewApi(a.sel, scrub, mode, a.duration(), a.Config.Render.Scale).Serve(a.Config.Api.Listen)
}

func (a *app) stream(ctx context.Context) error {
    if err := a.loadScene(); err != nil {
        return err
    }
    if err := a.connect(); err != nil {
        return err
    }
    defer a.Client.Disconnect(250)

    s := stream.NewStreamer(a.Config, a.Client, a.sched, a.sel)
    return s.Run(ctx, 33 * time.Millisecond)
}

func newRootCommand() *cobra.Command {
    a := newApp()

    cmd := &cobra.Command{
        Use: "tweencap",
        Short: "Capture scene transitions and render them frame by frame",
        SilenceUsage: true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            return a.readConfig()
        },
    }
    cmd.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "YAML config file.")

    var frames int
    var output string
    render := &cobra.Command{
        Use: "render",
        Short: "Render evenly spaced frames of the scene",
        RunE: func(cmd *cobra.Command, args []string) error {
            if cmd.Flags().Changed("frames") {
                a.Config.Render.Frames = frames
            }
            if cmd.Flags().Changed("output") {
                a.Config.Render.Output = output
            }
            return a.render(cmd.Context())
        },
    }
    render.Flags().IntVar(&frames, "frames", 50, "number of frame intervals to render")
    render.Flags().StringVar(&output, "output", "stdout", "stdout, png or mqtt")

    serve := &cobra.Command{
        Use: "serve",
        Short: "Serve the recorded scene over HTTP",
        RunE: func(cmd *cobra.Command, args []string) error {
            return a.serve()
        },
    }

    live := &cobra.Command{
        Use: "stream",
        Short: "Play the scene live and stream it over MQTT",
        RunE: func(cmd *cobra.Command, args []string) error {
            return a.stream(cmd.Context())
        },
    }

    cmd.AddCommand(render, serve, live)
    return cmd
}

func main() {
    // Frames may go to stdout, so logging stays on stderr.
    log.SetOutput(os.Stderr)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
    err := newRootCommand().ExecuteContext(ctx)
    stop()
    if err != nil {
        os.Exit(1)
    }
}
