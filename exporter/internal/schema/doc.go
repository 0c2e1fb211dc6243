// Package schema encodes the meter's page layout as data and maps extracted
// tokens onto published metrics.
//
// The device exposes no machine-readable description of its pages. The three
// Schema tables (Realtime, PowerQuality, Revenue) are that description: each
// MetricSpec says "value N of class X on this page is metric M{name=L}".
//
// Map checks Required() against the extracted counts first and fails with a
// *SchemaMismatchError when a page has drifted, rather than publishing values
// read from the wrong position.
package schema
