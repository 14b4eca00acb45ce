// Package api serves Mondrian compositions over HTTP.
//
// The server is a thin layer over [pipeline.Runner]: it turns requests into
// [pipeline.Options], runs the pipeline and writes the artifacts back.
//
// # Routes
//
//	GET  /healthz                 liveness probe, returns "ok"
//	GET  /version                 build information
//	GET  /palettes                built-in palettes
//	GET  /compose.{format}        render one artifact from query parameters
//	POST /compose                 render several formats from a JSON body
//	GET  /compositions/{id}       fetch a cached composition as JSON
//	GET  /metrics                 Prometheus exposition (when enabled)
//
// Query parameters and JSON keys are the configuration keys (width,
// vertical_lines, color_density, palette, seed, ...). Errors are returned as
// {"code": "...", "message": "..."} with a status derived from the code.
package api
