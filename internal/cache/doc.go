// Package cache implements the two-tier key-value cache: an in-process map
// (hot tier) backed by one JSON record per key under a cache root (durable
// tier). Keys map to <root>/<key>, so a key containing `/` lives in a nested
// directory. Records are written to a uniquely named temp file next to their
// final path and renamed into place, so readers never observe a torn record.
// Malformed keys are the only errors callers see; storage faults degrade to
// false returns or cache misses and are reported through the logger.
package cache
