// Package compute tracks scrape health across cycles.
//
// engine.go provides the stateful Engine. Observe is called once per scrape
// with the samples (or the error) and an injectable clock, so tests are
// deterministic. It keeps a 20-scrape outcome window for uptime %, the
// consecutive failure count, and the last value of every counter sample.
//
// A counter sample lower than its previous value is a regression. It is
// logged and counted in Status.CounterRegressions; the value is still
// published unchanged.
//
// States: up (last scrape succeeded), down (last scrape failed), unknown
// (no scrape yet).
package compute
