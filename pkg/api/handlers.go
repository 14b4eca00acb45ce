package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/core/palette"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// Response headers set on artifact responses.
const (
	HeaderCompositionID = "X-Composition-Id"
	HeaderSeed          = "X-Seed"
	HeaderRectCount     = "X-Rect-Count"
	HeaderCache         = "X-Cache"
)

// ComposeResponse is the body of a successful POST /compose.
type ComposeResponse struct {
	ID        string            `json:"id"`
	Seed      int64             `json:"seed"`
	Palette   string            `json:"palette"`
	RectCount int               `json:"rect_count"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	names := palette.Names()
	out := make([]palette.Palette, 0, len(names))
	for _, n := range names {
		if p, ok := palette.Lookup(n); ok {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleComposeArtifact renders a single format chosen by the path suffix,
// e.g. /compose.png?seed=42&palette=pastel.
func (s *Server) handleComposeArtifact(w http.ResponseWriter, r *http.Request) {
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{string(format)}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set(HeaderCompositionID, result.Composition.ID)
	h.Set(HeaderSeed, strconv.FormatInt(result.Composition.Seed, 10))
	h.Set(HeaderRectCount, strconv.Itoa(result.Composition.RectCount))
	h.Set(HeaderCache, cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[string(format)])
}

// handleCompose renders every requested format from a JSON options body.
// Artifacts are base64-encoded in the response.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.DefaultOptions()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ComposeResponse{
		ID:        result.Composition.ID,
		Seed:      result.Composition.Seed,
		Palette:   result.Composition.Palette,
		RectCount: result.Composition.RectCount,
		Cached:    result.CacheInfo.GenerateHit && result.CacheInfo.RenderHit,
		Artifacts: result.Artifacts,
	})
}

// handleComposition returns a previously generated composition by ID.
func (s *Server) handleComposition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.runner.Lookup(r.Context(), id)
	if stderrors.Is(err, cache.ErrCacheMiss) {
		s.writeError(w, r, errNotFound("composition "+id))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(c, sink.WithJSONGenerator(s.runner.Generator))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.FormatJSON.ContentType())
	w.Header().Set(HeaderCache, cacheStatus(true))
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
