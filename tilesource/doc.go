// Package tilesource fetches raw vector tile bytes.
//
// A Source is either an HTTP endpoint or the local filesystem; both take a
// location template with {z}, {x}, {y} (and {-y} for TMS row order)
// placeholders. New picks the implementation from the location the same
// way the CLI treats its argument: http:// and https:// are fetched over
// HTTP, anything else is read from disk.
//
// Sources return the payload as stored. Decompress inflates gzip and zstd
// payloads up to a size limit and passes anything else through unchanged.
package tilesource
