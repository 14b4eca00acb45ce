package pipeline

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// LoadFile reads options from a TOML file. Keys match the JSON names
// (width, color_density, formats, ...); a [custom_palette] table replaces
// the named palette. Absent keys keep their defaults and unknown keys are
// rejected.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes TOML options from data. name is used in error
// messages.
func ParseConfig(data []byte, name string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", name, strings.Join(keys, ", "))
	}
	return opts, nil
}

// EncodeConfig writes opts as TOML, in the format [LoadFile] reads.
func EncodeConfig(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
