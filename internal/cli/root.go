package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-envstore/internal/adapter"
	"github.com/MKhiriev/go-envstore/internal/app"
	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/logger"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitNotResolved  = 1
	ExitUsageError   = 2
	ExitRuntimeError = 3
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// errNotResolved marks a lookup that found nothing; it maps to
// [ExitNotResolved].
var errNotResolved = errors.New("not resolved")

type cli struct {
	flags  *config.Flags
	build  BuildInfo
	stdout io.Writer
	stderr io.Writer
}

// Run executes the command line in args and returns the process exit code.
func Run(ctx context.Context, args []string, build BuildInfo, stdout, stderr io.Writer) int {
	c := &cli{
		build:  build.withDefaults(),
		stdout: stdout,
		stderr: stderr,
	}

	if args == nil {
		args = []string{}
	}

	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNotResolved):
		fmt.Fprintln(stderr, err)
		return ExitNotResolved
	case isUsageError(err):
		fmt.Fprintln(stderr, "Error:", err)
		return ExitUsageError
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return ExitRuntimeError
	}
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "envstore",
		Short:         "Environment-aware configuration registry",
		Long:          "envstore loads named environments that inherit from each other and resolves dotted configuration keys against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	c.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		c.newReadCmd(),
		c.newDumpCmd(),
		c.newEnvsCmd(),
		c.newSetCmd(),
		c.newExtendCmd(),
		c.newServeCmd(),
		c.newVersionCmd(),
	)

	return root
}

// settings merges every settings layer and prepares the logger.
func (c *cli) settings() (*config.StructuredConfig, *logger.Logger, error) {
	cfg, err := config.GetStructuredConfig(c.flags.Config())
	if err != nil {
		return nil, nil, usageError{err}
	}
	if cfg.App.Version == "" {
		cfg.App.Version = c.build.Version
	}

	log := logger.NewLogger("envstore")
	log.Logger = log.Output(c.stderr)
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, nil, usageError{err}
	}

	return cfg, log, nil
}

// registry returns the registry the inspecting commands work on: a remote
// server when --remote is set, otherwise one loaded from local sources.
// The returned func releases local resources.
func (c *cli) registry(ctx context.Context) (adapter.RegistryReader, func(), error) {
	cfg, log, err := c.settings()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Adapter.RemoteAddress != "" {
		remote, err := c.connect(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return remote, func() {}, nil
	}

	local, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return newLocalRegistry(local.Registry), func() { local.Close() }, nil
}

// remote returns the client for the server named by --remote. Commands that
// change the registry use it: a registry loaded in-process would be thrown
// away when the command exits.
func (c *cli) remote(ctx context.Context, command string) (adapter.RegistryAdapter, error) {
	cfg, log, err := c.settings()
	if err != nil {
		return nil, err
	}
	if cfg.Adapter.RemoteAddress == "" {
		return nil, usageError{fmt.Errorf("%s requires --remote", command)}
	}

	return c.connect(ctx, cfg, log)
}

// connect builds the remote client and, when -e is given, loads that
// environment on the server first.
func (c *cli) connect(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (adapter.RegistryAdapter, error) {
	remote, err := adapter.NewHTTPRegistryAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, usageError{err}
	}

	if env := cfg.App.Environment; env != "" {
		if err = remote.Load(ctx, env); err != nil {
			return nil, fmt.Errorf("error loading remote environment %q: %w", env, err)
		}
	}

	return remote, nil
}

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var ue usageError
	return errors.As(err, &ue)
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// minimumArgs is cobra.MinimumNArgs reporting a usage error.
func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (b BuildInfo) withDefaults() BuildInfo {
	if b.Version == "" {
		b.Version = "N/A"
	}
	if b.Date == "" {
		b.Date = "N/A"
	}
	if b.Commit == "" {
		b.Commit = "N/A"
	}
	return b
}
