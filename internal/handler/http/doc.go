// Package http exposes a configuration registry over a small REST API.
//
// Reads (active environment, environment names, the whole registry, a single
// key) and writes (set a key, load an environment, extend an environment)
// map one to one onto registry operations. Request tracing, access logging
// and response compression are handled by middleware before requests reach
// the handlers.
package http
