// Package server hosts the Fiber HTTP surface over a FileCache: one route per
// cache operation under /cache/<key>, bulk operations under /-/multi, and a
// request-id middleware that logs every request through logrus.
// Argument errors map to 400 responses; storage faults surface only as the
// cache reports them (404 misses, 422 refused writes, 500 failed removals).
// Diagnostics routes live in the routes subpackage so the binary decides
// whether to expose them.
package server
