// Package loader populates a configuration registry from environment
// definitions at process start.
//
// A [Source] yields environment definitions (name, parents, own settings).
// [Loader.Apply] feeds them to a [Registry] using nothing but Set and Extend,
// in declaration order, so a definition may extend any environment declared
// before it, in the same source or in an earlier one.
//
// Two sources are provided: [FileSource] for JSON, YAML and TOML definition
// files and [SQLSource] for definitions kept in SQLite or PostgreSQL.
package loader
