package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// generateFlags holds the generate flags that are not pipeline options.
type generateFlags struct {
	config      string
	formats     string
	output      string
	noCache     bool
	printConfig bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Mondrian composition",
		Long: `Generate a Mondrian composition and write it to disk.

Options can be read from a TOML file with --config; flags given on the
command line override values from the file. Without --seed a fresh seed is
drawn and reported, so any composition can be reproduced later.

Seeded compositions are cached locally for faster subsequent runs.`,
		Example: `  mondrian generate --seed 42
  mondrian generate --palette pastel --vertical-lines 6 -f svg,png -o art
  mondrian generate --config mondrian.toml --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveOptions(cmd.Flags(), opts, flags)
			if err != nil {
				return err
			}
			if flags.printConfig {
				data, err := pipeline.EncodeConfig(resolved)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return c.runGenerate(cmd.Context(), resolved, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "read options from a TOML file")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(sink.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.printConfig, "print-config", false, "print the effective options as TOML and exit")
	registerOptionFlags(cmd.Flags(), &opts)

	return cmd
}

// registerOptionFlags binds one flag per pipeline option to o. Defaults are
// taken from o.
func registerOptionFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.Float64Var(&o.Width, "width", o.Width, "canvas width")
	fs.Float64Var(&o.Height, "height", o.Height, "canvas height")
	fs.IntVar(&o.VerticalLines, "vertical-lines", o.VerticalLines, "number of vertical lines")
	fs.IntVar(&o.HorizontalLines, "horizontal-lines", o.HorizontalLines, "number of horizontal lines")
	fs.Float64Var(&o.LineThickness, "line-thickness", o.LineThickness, "line stroke width")
	fs.Float64Var(&o.Margin, "margin", o.Margin, "margin as a fraction of each axis")
	fs.Float64Var(&o.ColorDensity, "color-density", o.ColorDensity, "fraction of cells to color (0-1)")
	fs.StringVarP(&o.Palette, "palette", "p", o.Palette, "color palette (see 'mondrian palettes')")
	fs.Float64Var(&o.Distribution, "distribution", o.Distribution, "line placement: 0 random, 1 structured")
	fs.Float64Var(&o.Balance, "balance", o.Balance, "cell selection: 0 random, 1 largest first")
	fs.Float64Var(&o.Randomness, "randomness", o.Randomness, "jitter applied to structured lines (0-0.5)")
	fs.Int64VarP(&o.Seed, "seed", "s", o.Seed, "random seed (0 draws a fresh one)")
	fs.Float64Var(&o.MinRectSize, "min-rect-size", o.MinRectSize, "minimum cell width and height")
	fs.BoolVar(&o.AddBackground, "background", o.AddBackground, "add a background rectangle")
	fs.BoolVar(&o.GroupElements, "group", o.GroupElements, "group primitives in the SVG output")
	fs.BoolVar(&o.VaryThickness, "vary-thickness", o.VaryThickness, "vary line thickness per line")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "PNG scale factor")
	fs.BoolVar(&o.NoLabels, "no-labels", o.NoLabels, "omit labels in SVG and PDF output")
	fs.BoolVar(&o.Refresh, "refresh", o.Refresh, "ignore cached results")
}

// resolveOptions merges the config file, if any, with the flags. Flags set
// explicitly on the command line win over file values.
func resolveOptions(fs *pflag.FlagSet, fromFlags pipeline.Options, flags generateFlags) (pipeline.Options, error) {
	opts := fromFlags
	if flags.config != "" {
		fileOpts, err := pipeline.LoadFile(flags.config)
		if err != nil {
			return pipeline.Options{}, err
		}

		overrides := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
		registerOptionFlags(overrides, &fileOpts)
		var setErr error
		fs.Visit(func(f *pflag.Flag) {
			if setErr == nil && overrides.Lookup(f.Name) != nil {
				setErr = overrides.Set(f.Name, f.Value.String())
			}
		})
		if setErr != nil {
			return pipeline.Options{}, setErr
		}
		opts = fileOpts
	}

	if flags.formats != "" {
		opts.Formats = parseFormats(flags.formats)
	}
	return opts, nil
}

// runGenerate runs the pipeline and writes one file per format.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, flags generateFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Generating composition...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	comp := result.Composition
	paths := outputPaths(flags.output, opts.Formats, comp.Seed)
	for _, format := range opts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
	}

	printSuccess("%s", comp.Summary())
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(comp.Seed, comp.RectCount, result.Stats.Primitives, result.CacheInfo.GenerateHit)
	if opts.Seed == 0 {
		printNewline()
		printNextStep("Reproduce", fmt.Sprintf("%s generate --seed %d", appName, comp.Seed))
	}
	return nil
}

// parseFormats splits a comma-separated format list. Validation happens in
// the pipeline.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPaths maps each format to its output file. A single format is
// written to output verbatim; several formats share output as base path
// with a known extension stripped. Without output the base is
// mondrian-<seed>.
func outputPaths(output string, formats []string, seed int64) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, seed)
	for _, f := range formats {
		paths[f] = base + sink.Format(f).Extension()
	}
	return paths
}

// basePath derives the base output path. A format extension on output is
// stripped so "-o art.svg -f svg,png" writes art.svg and art.png.
func basePath(output string, seed int64) string {
	if output == "" {
		return fmt.Sprintf("%s-%d", appName, seed)
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
