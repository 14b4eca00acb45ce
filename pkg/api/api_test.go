package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/core/palette"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(fc, nil, nil)
	srv := httptest.NewServer(New(runner, opts...))
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e), "body: %s", body)
	return e
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = get(t, srv.URL+"/version")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"version"`)
}

func TestPalettes(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/palettes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []palette.Palette
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, len(palette.Names()))
	assert.Equal(t, palette.Classic, got[0].Name)
	assert.Equal(t, "#FFFFFF", got[0].Background)
}

func TestComposeArtifact(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/compose.svg?seed=42&width=400&height=300&palette=pastel")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "42", resp.Header.Get(HeaderSeed))
	assert.NotEmpty(t, resp.Header.Get(HeaderCompositionID))
	assert.Equal(t, "MISS", resp.Header.Get(HeaderCache))
	assert.True(t, bytes.HasPrefix(body, []byte("<svg")))
	assert.Contains(t, string(body), `width="400"`)

	resp, again := get(t, srv.URL+"/compose.svg?seed=42&width=400&height=300&palette=pastel")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HIT", resp.Header.Get(HeaderCache))
	assert.Equal(t, body, again)

	resp, body = get(t, srv.URL+"/compose.png?seed=1&width=100&height=80&scale=1")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestComposeArtifactErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown format", "/compose.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown parameter", "/compose.svg?colour=red", http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed number", "/compose.svg?width=wide", http.StatusBadRequest, "INVALID_INPUT"},
		{"negative width", "/compose.svg?width=-10", http.StatusBadRequest, "INVALID_INPUT"},
		{"too many lines", "/compose.svg?vertical_lines=1000", http.StatusBadRequest, "INVALID_INPUT"},
		{"density out of range", "/compose.svg?color_density=2", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown route", "/nope", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, body).Code)
		})
	}
}

func TestCompose(t *testing.T) {
	srv := newTestServer(t)

	req := `{"seed": 9, "palette": "modern", "vertical_lines": 3, "formats": ["svg", "json"]}`
	resp, err := http.Post(srv.URL+"/compose", "application/json", strings.NewReader(req))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ComposeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, int64(9), got.Seed)
	assert.Equal(t, "modern", got.Palette)
	require.Contains(t, got.Artifacts, "svg")
	require.Contains(t, got.Artifacts, "json")
	assert.True(t, bytes.HasPrefix(got.Artifacts["svg"], []byte("<svg")))

	c, err := sink.ReadJSON(got.Artifacts["json"])
	require.NoError(t, err)
	assert.Equal(t, got.RectCount, c.RectCount)
	vertical := c.Lines(composition.AxisVertical)
	assert.NotEmpty(t, vertical)
	assert.LessOrEqual(t, len(vertical), 3)
}

func TestComposeUnknownPaletteFallsBack(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/compose.svg?seed=4&palette=sepia&vertical_lines=-2")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, bytes.HasPrefix(body, []byte("<svg")))

	req := `{"seed": 4, "palette": "sepia", "color_density": -1, "formats": ["json"]}`
	post, err := http.Post(srv.URL+"/compose", "application/json", strings.NewReader(req))
	require.NoError(t, err)
	defer post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var got ComposeResponse
	require.NoError(t, json.NewDecoder(post.Body).Decode(&got))
	assert.Equal(t, "classic", got.Palette)
	assert.Zero(t, got.RectCount)
}

func TestComposeBadBody(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{"seed": "x"}`, `{"colour": "red"}`, `not json`} {
		resp, err := http.Post(srv.URL+"/compose", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "INVALID_INPUT", decodeError(t, data).Code, body)
	}
}

func TestCompositionLookup(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/compose.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := resp.Header.Get(HeaderCompositionID)
	seed := resp.Header.Get(HeaderSeed)
	require.NotEmpty(t, id)

	resp, body := get(t, srv.URL+"/compositions/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	c, err := sink.ReadJSON(body)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, seed, strconv.FormatInt(c.Seed, 10))

	resp, body = get(t, srv.URL+"/compositions/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.RegisterPrometheus(reg)
	require.NoError(t, err)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	get(t, srv.URL+"/compose.json?seed=5")
	get(t, srv.URL+"/compose.gif")

	resp, body := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, `mondrian_http_requests_total{method="GET",route="/compose.{format}",status="200"} 1`)
	assert.Contains(t, text, `mondrian_http_errors_total{code="INVALID_FORMAT",method="GET",route="/compose.{format}"} 1`)
	assert.Contains(t, text, `mondrian_pipeline_generations_total{palette="classic"} 1`)
}

func TestOptionsFromQuery(t *testing.T) {
	q := map[string][]string{
		"width":          {"640"},
		"vertical_lines": {"2"},
		"seed":           {"77"},
		"vary_thickness": {""},
		"add_background": {"false"},
		"palette":        {"primary"},
	}
	opts, err := optionsFromQuery(q)
	require.NoError(t, err)
	assert.Equal(t, 640.0, opts.Width)
	assert.Equal(t, 2, opts.VerticalLines)
	assert.Equal(t, int64(77), opts.Seed)
	assert.True(t, opts.VaryThickness)
	assert.False(t, opts.AddBackground)
	assert.Equal(t, "primary", opts.Palette)
	assert.Equal(t, pipeline.DefaultOptions().Height, opts.Height)
}
