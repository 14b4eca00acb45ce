package sink

import (
	"encoding/json"

	"github.com/matzehuels/mondrian/pkg/core/composition"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	generator string
	compact   bool
}

// WithJSONGenerator records the producing program (e.g. "mondrian v1.2.0")
// in the output.
func WithJSONGenerator(s string) JSONOption { return func(r *jsonRenderer) { r.generator = s } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Generator string `json:"generator,omitempty"`
	composition.Composition
}

// RenderJSON exports c with its primitives and structured styles, for
// external tools or re-rendering.
func RenderJSON(c composition.Composition, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Generator: r.generator, Composition: c}
	if out.Primitives == nil {
		out.Primitives = []composition.Primitive{}
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON parses output of [RenderJSON] back into a composition.
func ReadJSON(data []byte) (composition.Composition, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return composition.Composition{}, err
	}
	return out.Composition, nil
}
