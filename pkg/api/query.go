package api

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// queryField applies one query parameter to the options.
type queryField func(o *pipeline.Options, v string) error

var queryFields = map[string]queryField{
	"width":            floatField(func(o *pipeline.Options) *float64 { return &o.Width }),
	"height":           floatField(func(o *pipeline.Options) *float64 { return &o.Height }),
	"vertical_lines":   intField(func(o *pipeline.Options) *int { return &o.VerticalLines }),
	"horizontal_lines": intField(func(o *pipeline.Options) *int { return &o.HorizontalLines }),
	"line_thickness":   floatField(func(o *pipeline.Options) *float64 { return &o.LineThickness }),
	"margin":           floatField(func(o *pipeline.Options) *float64 { return &o.Margin }),
	"color_density":    floatField(func(o *pipeline.Options) *float64 { return &o.ColorDensity }),
	"distribution":     floatField(func(o *pipeline.Options) *float64 { return &o.Distribution }),
	"balance":          floatField(func(o *pipeline.Options) *float64 { return &o.Balance }),
	"randomness":       floatField(func(o *pipeline.Options) *float64 { return &o.Randomness }),
	"min_rect_size":    floatField(func(o *pipeline.Options) *float64 { return &o.MinRectSize }),
	"add_background":   boolField(func(o *pipeline.Options) *bool { return &o.AddBackground }),
	"group_elements":   boolField(func(o *pipeline.Options) *bool { return &o.GroupElements }),
	"vary_thickness":   boolField(func(o *pipeline.Options) *bool { return &o.VaryThickness }),
	"no_labels":        boolField(func(o *pipeline.Options) *bool { return &o.NoLabels }),
	"refresh":          boolField(func(o *pipeline.Options) *bool { return &o.Refresh }),
	"scale":            floatField(func(o *pipeline.Options) *float64 { return &o.Scale }),
	"palette": func(o *pipeline.Options, v string) error {
		o.Palette = v
		return nil
	},
	"seed": func(o *pipeline.Options, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		o.Seed = n
		return nil
	},
}

// optionsFromQuery builds options from URL query parameters. Absent keys
// keep their defaults; unknown keys are rejected.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		apply, ok := queryFields[k]
		if !ok {
			return opts, errors.New(errors.ErrCodeInvalidInput, "unknown parameter %q", k)
		}
		v := strings.TrimSpace(q.Get(k))
		if err := apply(&opts, v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid value %q for %s", v, k)
		}
	}
	return opts, nil
}

func floatField(field func(*pipeline.Options) *float64) queryField {
	return func(o *pipeline.Options, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(o) = f
		return nil
	}
}

func intField(field func(*pipeline.Options) *int) queryField {
	return func(o *pipeline.Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func boolField(field func(*pipeline.Options) *bool) queryField {
	return func(o *pipeline.Options, v string) error {
		if v == "" {
			*field(o) = true
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(o) = b
		return nil
	}
}
