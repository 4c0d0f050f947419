package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-envstore/internal/adapter"
	"github.com/MKhiriev/go-envstore/internal/app"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// Output formats of the dump command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func (c *cli) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <key>",
		Short: "Print the JSON value resolved for a dotted key",
		Long: "Resolve a dotted key against the active environment, or against the whole registry " +
			"when its first segment names an environment. Exits with 1 when nothing resolves.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, release, err := c.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			value, err := reg.Read(cmd.Context(), args[0])
			if errors.Is(err, adapter.ErrNotFound) {
				return fmt.Errorf("key %q is %w", args[0], errNotResolved)
			}
			if err != nil {
				return err
			}

			data, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, string(data))
			return nil
		},
	}
}

func (c *cli) newDumpCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the whole registry",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != formatJSON && output != formatYAML {
				return usageError{fmt.Errorf("unsupported output format %q (json or yaml)", output)}
			}

			reg, release, err := c.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			tree, err := reg.Config(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			if output == formatYAML {
				data, err = yaml.Marshal(tree.Any())
			} else {
				data, err = json.MarshalIndent(tree, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("error encoding registry: %w", err)
			}

			_, err = c.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "Output format: json or yaml")

	return cmd
}

func (c *cli) newEnvsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List environment names; * marks the active one",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, release, err := c.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			names, err := reg.Environments(cmd.Context())
			if err != nil {
				return err
			}

			active, err := reg.Environment(cmd.Context())
			if err != nil && !errors.Is(err, adapter.ErrNotFound) {
				return err
			}

			for _, name := range names {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Fprintf(c.stdout, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func (c *cli) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <json-value>",
		Short: "Store a JSON value on a running server",
		Long: "Store a JSON value (scalar or object) under the server's active key prefix followed by key. " +
			"Use -e to load the environment the key belongs to first. Requires --remote.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value registry.Value
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				return usageError{fmt.Errorf("invalid JSON value %q: %w", args[1], err)}
			}

			remote, err := c.remote(cmd.Context(), "set")
			if err != nil {
				return err
			}

			return remote.Set(cmd.Context(), args[0], value)
		},
	}
}

func (c *cli) newExtendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extend <environment> [parent...]",
		Short: "Compose an environment from parents on a running server",
		Long: "Compose the environment from its parents, later parents winning, with its own settings " +
			"merged last. Unknown parents are skipped. Requires --remote.",
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := c.remote(cmd.Context(), "extend")
			if err != nil {
				return err
			}

			return remote.Extend(cmd.Context(), args[0], args[1:])
		},
	}
}

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry over the REST API",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := c.settings()
			if err != nil {
				return err
			}
			if cfg.Adapter.RemoteAddress != "" {
				return usageError{errors.New("serve does not accept --remote")}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer stop()

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Serve(ctx)
		},
	}
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information, and the server version with --remote",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.stdout, "Build version: %s\n", c.build.Version)
			fmt.Fprintf(c.stdout, "Build date: %s\n", c.build.Date)
			fmt.Fprintf(c.stdout, "Build commit: %s\n", c.build.Commit)

			cfg, log, err := c.settings()
			if err != nil {
				return err
			}
			if cfg.Adapter.RemoteAddress == "" {
				return nil
			}

			remote, err := c.connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			version, err := remote.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Server version: %s\n", version)
			return nil
		},
	}
}
