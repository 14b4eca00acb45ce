package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateWritesFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "art")
	if _, err := runCLI(t, "generate", "--seed", "42", "-f", "svg,json", "-o", base+".svg"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(len(svg), 20)])
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("json not written: %v", err)
	}
	c, err := sink.ReadJSON(data)
	if err != nil {
		t.Fatalf("json output: %v", err)
	}
	if c.Seed != 42 {
		t.Errorf("seed = %d, want 42", c.Seed)
	}
}

func TestGenerateSingleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "piece.png")
	if _, err := runCLI(t, "generate", "--seed", "3", "-f", "png", "--scale", "1", "-o", path, "--no-cache"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestGenerateRejectsInvalidOptions(t *testing.T) {
	tests := [][]string{
		{"generate", "--no-cache", "-f", "gif"},
		{"generate", "--no-cache", "--vertical-lines", "1000"},
		{"generate", "--no-cache", "--width", "-1"},
		{"generate", "--no-cache", "--config", "does-not-exist.toml"},
	}
	for _, args := range tests {
		if _, err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestGeneratePrintConfig(t *testing.T) {
	out, err := runCLI(t, "generate", "--print-config", "--seed", "3", "--palette", "pastel", "-f", "svg,png")
	if err != nil {
		t.Fatalf("generate --print-config: %v", err)
	}
	opts, err := pipeline.ParseConfig([]byte(out), "stdout")
	if err != nil {
		t.Fatalf("printed config does not parse: %v\n%s", err, out)
	}
	if opts.Seed != 3 || opts.Palette != "pastel" || len(opts.Formats) != 2 {
		t.Errorf("printed config = seed %d palette %s formats %v", opts.Seed, opts.Palette, opts.Formats)
	}
}

func TestResolveOptionsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mondrian.toml")
	config := "seed = 5\npalette = \"pastel\"\nwidth = 1024\nformats = [\"png\"]\n"
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerOptionFlags(fs, &opts)
	if err := fs.Parse([]string{"--seed=9", "--vary-thickness"}); err != nil {
		t.Fatal(err)
	}

	got, err := resolveOptions(fs, opts, generateFlags{config: path})
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if got.Seed != 9 {
		t.Errorf("Seed = %d, want flag value 9", got.Seed)
	}
	if !got.VaryThickness {
		t.Error("VaryThickness flag should apply")
	}
	if got.Palette != "pastel" || got.Width != 1024 {
		t.Errorf("file values lost: palette %s width %g", got.Palette, got.Width)
	}
	if len(got.Formats) != 1 || got.Formats[0] != "png" {
		t.Errorf("Formats = %v, want file value [png]", got.Formats)
	}

	got, err = resolveOptions(fs, opts, generateFlags{config: path, formats: "svg, json"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got.Formats, ",") != "svg,json" {
		t.Errorf("Formats = %v, want --format value", got.Formats)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "svg"},
		{"svg", "svg"},
		{"svg,pdf,png", "svg,pdf,png"},
		{" png , json ,", "png,json"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.input), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default base", "", []string{"svg", "png"}, map[string]string{"svg": "mondrian-7.svg", "png": "mondrian-7.png"}},
		{"single verbatim", "out/a.img", []string{"png"}, map[string]string{"png": "out/a.img"}},
		{"strip known extension", "art.svg", []string{"svg", "pdf"}, map[string]string{"svg": "art.svg", "pdf": "art.pdf"}},
		{"keep unknown extension", "art.v2", []string{"svg", "json"}, map[string]string{"svg": "art.v2.svg", "json": "art.v2.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats, 7)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestPalettesCommand(t *testing.T) {
	out, err := runCLI(t, "palettes")
	if err != nil {
		t.Fatalf("palettes: %v", err)
	}
	for _, want := range []string{"classic", "modern", "grayscale", "primary", "pastel", "#FFB3BA"} {
		if !strings.Contains(out, want) {
			t.Errorf("palettes output missing %q", want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionGenerators {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
			continue
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s output does not mention %s", shell, appName)
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}
