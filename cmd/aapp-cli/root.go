package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aapp-cli/aapp-cli/internal/bundle"
	"github.com/aapp-cli/aapp-cli/internal/cli"
	"github.com/spf13/pflag"
)

// version is overridden at build time via -ldflags.
var version = "0.0.0"

func newRootCommand(ctx context.Context, manager *bundle.Manager) *cli.Command {
	showVersion := false

	root := &cli.Command{
		Name:    "aapp-cli",
		Summary: "aapp-cli: Advanced App CLI",
		Usage:   "aapp-cli <command> [arguments]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("aapp-cli", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print the version and exit")
			return flagSet
		},
	}

	root.Subcommands = []*cli.Command{
		{
			Name:    "install",
			Summary: "Install an app from a repository",
			Usage:   "aapp-cli install <app_name>",
			Run: func(args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: aapp-cli install <app_name>")
				}
				return manager.Install(ctx, args[0])
			},
		},
		{
			Name:    "bootstrap",
			Summary: "Bootstrap an app from a PyPI package",
			Usage:   "aapp-cli bootstrap <package_name>",
			Run: func(args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: aapp-cli bootstrap <package_name>")
				}
				return manager.Bootstrap(ctx, args[0])
			},
		},
		{
			Name:    "run",
			Summary: "Run an app bundle",
			Usage:   "aapp-cli run <bundle_name> [--args ...]",
			Run: func(args []string) error {
				positional, extra := splitExtraArgs(args)
				if len(positional) != 1 {
					return fmt.Errorf("usage: aapp-cli run <bundle_name> [--args ...]")
				}
				return manager.Run(ctx, positional[0], extra)
			},
		},
		{
			Name:    "delete",
			Summary: "Delete an app",
			Usage:   "aapp-cli delete <bundle_name>",
			Run: func(args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: aapp-cli delete <bundle_name>")
				}
				return manager.Delete(ctx, args[0])
			},
		},
		{
			Name:    "list",
			Summary: "List installed app bundles",
			Usage:   "aapp-cli list",
			Run: func(args []string) error {
				if len(args) != 0 {
					return fmt.Errorf("usage: aapp-cli list")
				}
				return manager.List(ctx)
			},
		},
	}

	root.Run = func(args []string) error {
		if showVersion {
			fmt.Printf("aapp-cli %s\n", version)
			return nil
		}
		root.PrintHelp(os.Stderr)
		return nil
	}

	return root
}

// splitExtraArgs separates the tokens after a literal "--args" from
// the positional arguments before it. Everything after the marker is
// forwarded to the bundle verbatim, flags included.
func splitExtraArgs(args []string) (positional, extra []string) {
	for i, arg := range args {
		if arg == "--args" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}
