// Package cli implements the envstore command line.
//
// Every command builds its settings from defaults, ENVSTORE_* environment
// variables, flags and an optional JSON settings file. Commands that inspect
// the registry either load it locally from the configured definition sources
// or, with --remote, query a running envstore server.
//
//	envstore -f envs.yaml -e Staging read db.host
//	envstore -f envs.yaml dump -o yaml
//	envstore --remote localhost:8080 envs
//	envstore -f envs.yaml -e Production serve -a :8080
package cli
