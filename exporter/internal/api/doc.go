// Package api implements the exporter's small JSON API.
//
// New(status, pipelines) returns an http.Handler that serves:
//
//	GET /api/v1/health  — state of recent scrapes (up | down | unknown),
//	                      uptime %, consecutive failures, last error,
//	                      counter regressions
//	GET /api/v1/schema  — the compiled-in page layout: per page, the minimum
//	                      token count per class and every series' source
//
// All endpoints respond with Content-Type: application/json and return 405
// for non-GET methods. JSON types are defined in types.go.
package api
