package api

import (
	"bytes"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/matt-g-everett/tweencap/record"
	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/stream"
)

// Api serves a recorded scene, scrubbed to whatever time is asked for.
type Api struct {
	mu       sync.Mutex
	scrub    record.ScrubFunc
	sel      scene.Selection
	mode     record.Mode
	duration float64
	scale    int
}

type elementState struct {
	ID     string             `json:"id"`
	Colour string             `json:"colour"`
	Attrs  map[string]float64 `json:"attrs"`
}

func NewApi(sel scene.Selection, scrub record.ScrubFunc, mode record.Mode, duration float64, scale int) *Api {
	a := new(Api)
	a.sel = sel
	a.scrub = scrub
	a.mode = mode
	a.duration = duration
	a.scale = scale
	return a
}

// Router builds the HTTP handlers.
func (a *Api) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())

	r.GET("/scene", a.handleScene)
	r.GET("/frame", a.handleFrame)
	r.GET("/frame.png", a.handleFramePNG)
	return r
}

func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return a.Router().Run(addr)
}

func (a *Api) handleScene(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"elements": a.sel.IDs(),
		"mode":     a.mode.String(),
		"duration": a.duration,
	})
}

func queryTime(c *gin.Context) (float64, bool) {
	t, err := strconv.ParseFloat(c.Query("t"), 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "t must be a number"})
		return 0, false
	}
	return t, true
}

func (a *Api) handleFrame(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}

	a.mu.Lock()
	a.scrub(t)
	states := make([]elementState, len(a.sel))
	for i, e := range a.sel {
		states[i] = elementState{ID: e.ID, Colour: e.Colour().Clamped().Hex(), Attrs: e.Attrs()}
	}
	a.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"t": t, "elements": states})
}

func (a *Api) handleFramePNG(c *gin.Context) {
	t, ok := queryTime(c)
	if !ok {
		return
	}
	scale := a.scale
	if s := c.Query("scale"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scale must be between 1 and 100"})
			return
		}
		scale = v
	}

	a.mu.Lock()
	a.scrub(t)
	f := stream.FrameOf(a.sel)
	a.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image(scale)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
