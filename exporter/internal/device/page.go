package device

import "time"

// Page identifies one of the meter's embedded web pages.
type Page string

// The three pages the exporter reads on every scrape.
const (
	PageRealtime     Page = "realtime"
	PagePowerQuality Page = "power-quality"
	PageRevenue      Page = "revenue"
)

// pagePaths maps each page to its path on the meter's web server.
var pagePaths = map[Page]string{
	PageRealtime:     "realtime01.html",
	PagePowerQuality: "pq01.html",
	PageRevenue:      "revenue01.html",
}

// Path returns the page's path relative to the device root, or "" for an
// unknown page.
func (p Page) Path() string {
	return pagePaths[p]
}

// Document is the raw text of one fetched page.
type Document struct {
	Page      Page
	FetchedAt time.Time
	Body      string
}
