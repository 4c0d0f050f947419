// Package config provides loading, merging, and validation of the envstore
// program's own settings: which definition sources to load into the
// registry, which environment to activate, and how to serve or reach it.
//
// Settings are assembled from several layers in the following priority order
// (later layers override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables (ENVSTORE_ prefix)
//  3. Command-line flags
//  4. JSON settings file
//
// The main entry point is [GetStructuredConfig].
package config
