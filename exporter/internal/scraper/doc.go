// Package scraper fetches the Siemens 9330 meter's embedded web pages.
//
// Three pages are read per scrape: realtime (realtime01.html), power quality
// (pq01.html) and revenue (revenue01.html), named by device.Page. Fetch
// returns the page body as a device.Document; every failure (connection,
// timeout, non-2xx) is a *FetchError carrying the page and the underlying
// cause. Nothing is retried or cached.
//
// The HTTP client is built once in New() and its transport is wrapped with
// otelhttp so each page GET is traced as a client span.
package scraper
