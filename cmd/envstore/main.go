// Command envstore loads environment-aware configuration and resolves dotted
// keys against it, locally or through a running envstore server.
//
// Build information is injected at link time:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=$(date +%F) -X main.buildCommit=$(git rev-parse --short HEAD)" ./cmd/envstore
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-envstore/internal/cli"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := cli.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	}

	os.Exit(cli.Run(context.Background(), os.Args[1:], build, os.Stdout, os.Stderr))
}
