package plots

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/velocity.hud/internal/testutil"
)

func TestSample(t *testing.T) {
	r := Ramp{Min: -1, Max: 1, Series: []Series{{Name: "double", Fn: func(x float64) float64 { return 2 * x }}}}
	xs, ys := r.Sample(5)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, xs)
	require.Len(t, ys, 1)
	assert.Equal(t, []float64{-2, -1, 0, 1, 2}, ys[0])

	xs, _ = r.Sample(0)
	assert.Len(t, xs, 2, "at least the endpoints")
}

func TestRamps(t *testing.T) {
	byName := map[string]Ramp{}
	for _, r := range Ramps() {
		byName[r.Name] = r
	}
	require.Contains(t, byName, "accel_hue")
	require.Contains(t, byName, "thermal")

	_, hue := byName["accel_hue"].Sample(3)
	assert.Equal(t, []float64{0, 60, 148}, hue[0], "clamped red, neutral yellow, clamped green")

	_, rgb := byName["thermal"].Sample(Samples)
	last := Samples - 1
	assert.Equal(t, 255.0, rgb[0][last])
	assert.Equal(t, 200.0, rgb[1][last])
	assert.Equal(t, 255.0, rgb[1][0])
	assert.Equal(t, 200.0, rgb[2][0], "blue is fixed")
	assert.Equal(t, 200.0, rgb[2][last], "blue is fixed")

	require.Contains(t, byName, "lane_alpha")
	_, alpha := byName["lane_alpha"].Sample(5) // 0, 0.5, 1, 1.5, 2
	assert.Equal(t, []float64{0.5, 1, 1, 1, 1}, alpha[0], "lane line")
	assert.Equal(t, []float64{1, 1, 1, 1, 0.5}, alpha[1], "road edge")

	_, gps := byName["gps_opacity"].Sample(16)
	assert.Equal(t, 1.0, gps[0][0])
	assert.InDelta(t, 0.3, gps[0][15], 1e-9)
}

func TestWritePNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ramps")
	paths, err := WritePNGs(dir, Ramps())
	require.NoError(t, err)
	require.Len(t, paths, len(Ramps()))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), p)
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Ramps()))
	html := buf.String()
	assert.Contains(t, html, "Corridor hue by acceleration")
	assert.Contains(t, html, "Thermal badge colour")
	assert.Contains(t, html, "echarts.init")
}

func TestHandler(t *testing.T) {
	w := testutil.NewTestRecorder()
	Handler(Ramps()[:1]).ServeHTTP(w, testutil.NewTestRequest(http.MethodGet, "/debug/ramps"))
	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Corridor hue")
}
