// Package collector turns meter pages into Prometheus metrics.
//
// Every call to Collect runs Scrape: the realtime, power-quality and revenue
// pages are fetched one after another, each is passed through extract and
// mapped with its schema. The first *scraper.FetchError, extraction error or
// *schema.SchemaMismatchError ends the scrape and nothing is exposed for it;
// the registry reports the error to the caller instead.
//
// A Collector is built with its fetcher and pipelines explicitly and is
// registered on a caller-owned prometheus.Registry, so tests can run isolated
// collectors against fixture servers.
package collector
