// Package device describes the Siemens 9330 meter's embedded web server: the
// pages it serves and the Document holding one fetched page. It imports
// nothing from the rest of the exporter, so both the scraper (which produces
// Documents) and the extractor (which reads them) can depend on it.
package device
