// Package server runs the registry's REST API with signal handling and
// graceful shutdown.
package server
