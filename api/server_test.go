package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/tweencap/record"
	"github.com/matt-g-everett/tweencap/scene"
	"github.com/matt-g-everett/tweencap/transition"
)

func newTestApi(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sel := scene.Selection{
		scene.NewElement("a", nil, colorful.Color{}),
		scene.NewElement("b", nil, colorful.Color{}),
	}
	sched := transition.NewScheduler(nil)
	sched.Schedule(sel, transition.Animation{
		Duration: time.Second,
		Tweens:   []transition.Tween{{Name: "x", Factory: transition.AttrTween("x", 10)}},
	})
	scrub, err := record.Record(sel, sched, record.Realtime)
	require.NoError(t, err)
	return NewApi(sel, scrub, record.Realtime, 1000, 3).Router()
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestApi_Scene(t *testing.T) {
	w := get(newTestApi(t), "/scene")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Elements []string `json:"elements"`
		Mode     string   `json:"mode"`
		Duration float64  `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Elements)
	assert.Equal(t, "realtime", body.Mode)
	assert.Equal(t, 1000.0, body.Duration)
}

func TestApi_Frame(t *testing.T) {
	r := newTestApi(t)
	w := get(r, "/frame?t=500")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		T        float64 `json:"t"`
		Elements []struct {
			ID     string             `json:"id"`
			Colour string             `json:"colour"`
			Attrs  map[string]float64 `json:"attrs"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Elements, 2)
	assert.Equal(t, 500.0, body.T)
	assert.InDelta(t, 5, body.Elements[1].Attrs["x"], 1e-9)
	assert.Equal(t, "#000000", body.Elements[0].Colour)

	// Scrubbing backwards is allowed.
	w = get(r, "/frame?t=100")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 1, body.Elements[0].Attrs["x"], 1e-9)
}

func TestApi_FramePNG(t *testing.T) {
	r := newTestApi(t)
	w := get(r, "/frame.png?t=250&scale=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
}

func TestApi_BadRequests(t *testing.T) {
	r := newTestApi(t)
	for _, url := range []string{"/frame", "/frame?t=soon", "/frame?t=NaN", "/frame.png?t=1&scale=0", "/frame.png?t=1&scale=big"} {
		w := get(r, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}
