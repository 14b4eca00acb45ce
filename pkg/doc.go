// Package pkg provides the libraries behind the mondrian generator.
//
// # Overview
//
// Mondrian draws grid compositions in the style of Piet Mondrian: black
// lines on a canvas, with a few cells filled from a color palette. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (line placement, grid partitioning, cell
//     selection, color assignment, palettes)
//  2. [render] - Output sinks (SVG, PNG, PDF, JSON)
//  3. [cache] - Composition and artifact caching (file, Redis, MongoDB)
//  4. [pipeline] - Orchestration (generate → render, cached)
//  5. [api] - HTTP server over the pipeline
//
// # Architecture
//
// The typical data flow through Mondrian:
//
//	Config (flags, TOML file, query string or JSON body)
//	         ↓
//	    [core/generator] (seeded RNG → lines → cells → colored blocks)
//	         ↓
//	    [core/composition] (ordered primitive list)
//	         ↓
//	    [render/sink] (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Generate a composition and render it as SVG:
//
//	import (
//	    "github.com/matzehuels/mondrian/pkg/core/generator"
//	    "github.com/matzehuels/mondrian/pkg/render/sink"
//	)
//
//	cfg := generator.DefaultConfig()
//	cfg.Seed = 42
//	c := generator.New().Generate(cfg)
//	svg := sink.RenderSVG(c)
//
// Or run the cached pipeline, as the CLI and the HTTP API do:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//
// [core]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/core
// [render]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/api
package pkg
