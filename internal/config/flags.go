// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags binds the command-line layer of [StructuredConfig] to a flag set.
// Only flags the user actually passes end up non-zero, so the result of
// [Flags.Config] overrides environment variables field by field.
type Flags struct {
	cfg     StructuredConfig
	address NetAddress
}

// BindFlags registers all settings flags on fs.
//
// Flags:
//
//	-c/--config           JSON settings file path
//	-f/--file             definition file (repeatable)
//	--db-driver           SQL source driver (sqlite3|pgx)
//	--db-dsn              SQL source DSN
//	-e/--environment      environment to activate
//	--log-level           log level (debug, info, warn, error)
//	--remote              base URL of a running envstore server
//	-a/--address          REST API listen address host:port
//	--request-timeout     REST API request timeout (e.g. "30s")
//	--remote-timeout      remote client request timeout (e.g. "5s")
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := new(Flags)

	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON settings file path")
	fs.StringArrayVarP(&f.cfg.Sources.Files, "file", "f", nil, "Environment definition file (JSON, YAML or TOML); repeatable")
	fs.StringVar(&f.cfg.Sources.DB.Driver, "db-driver", "", "SQL source driver: sqlite3 or pgx")
	fs.StringVar(&f.cfg.Sources.DB.DSN, "db-dsn", "", "SQL source DSN")
	fs.StringVarP(&f.cfg.App.Environment, "environment", "e", "", "Environment to activate")
	fs.StringVar(&f.cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&f.cfg.Adapter.RemoteAddress, "remote", "", "Base URL of a running envstore server")
	fs.VarP(&f.address, "address", "a", "REST API listen address host:port")
	fs.DurationVar(&f.cfg.Server.RequestTimeout, "request-timeout", 0, "REST API request timeout (e.g. 30s)")
	fs.DurationVar(&f.cfg.Adapter.RequestTimeout, "remote-timeout", 0, "Remote client request timeout (e.g. 5s)")

	return f
}

// Config returns the values collected from the command line.
func (f *Flags) Config() *StructuredConfig {
	cfg := f.cfg
	cfg.Sources.Files = append([]string(nil), f.cfg.Sources.Files...)
	cfg.Server.HTTPAddress = f.address.String()

	return &cfg
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces; any other host must be
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type names the flag value in help output.
func (a *NetAddress) Type() string {
	return "host:port"
}
