// Command permcheck is a small demonstration CLI over the permission core:
// it loads a YAML fixture describing groups and a holder, resolves the
// holder's exported permission map, and prints it.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/lattice-run/permix/internal/config"
	"github.com/lattice-run/permix/internal/permlog"
	"github.com/lattice-run/permix/internal/suggest"
	"github.com/lattice-run/permix/permission"
	"github.com/lattice-run/permix/permission/groupcache"
)

func main() {
	app := &cli.App{
		Name:  "permcheck",
		Usage: "resolve and export a holder's effective permissions from a fixture file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "fixture",
				Aliases:  []string{"f"},
				Usage:    "path to a YAML fixture describing groups, a holder and a context",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "optional YAML/TOML/JSON config file overriding the default export flags",
			},
			&cli.DurationFlag{
				Name:  "group-cache-ttl",
				Usage: "how long a resolved group lookup stays cached before the fixture is consulted again",
				Value: 30 * time.Second,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "lower",
				Usage: "lowercase exported permission keys",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := permlog.New(c.Bool("debug"))

	flags, err := loadFlags(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Errorf("permcheck: %w", err), 1)
	}

	fixture, err := config.LoadFixture(c.String("fixture"))
	if err != nil {
		return cli.Exit(fmt.Errorf("permcheck: %w", err), 1)
	}

	holder, groups, ctx := fixture.Build()
	rawLookup := config.Lookup(groups)

	warnUnknownGroups(log, holder, groups)

	cache := groupcache.NewTTL(rawLookup, c.Duration("group-cache-ttl"))
	cache.Start()
	defer cache.Stop()

	exported := holder.ExportNodes(ctx, cache.Lookup, flags, nil, c.Bool("lower"), nil)

	log.Info("resolved permissions",
		"holder", holder.ObjectName(),
		"holderID", holder.ID().String(),
		"count", len(exported))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exported)
}

// loadFlags resolves permission.Flags from the given optional config file,
// falling back to the defaults internal/config registers on the global
// viper instance when no file is given.
func loadFlags(path string) (permission.Flags, error) {
	v := viper.GetViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return permission.Flags{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}
	return config.Load(v)
}

// warnUnknownGroups checks every group the holder directly references
// against the fixture's known groups, logging a "did you mean" suggestion
// for each miss — a typo'd group name in a hand-edited fixture is the
// common case this is meant to catch.
func warnUnknownGroups(log interface{ Info(string, ...interface{}) }, holder *permission.Store, groups map[string]*permission.Store) {
	known := make([]string, 0, len(groups))
	for name := range groups {
		known = append(known, name)
	}

	for _, name := range holder.GetGroupNames() {
		if _, ok := groups[name]; ok {
			continue
		}
		if hints := suggest.Suggest(name, known); len(hints) > 0 {
			log.Info("unknown group referenced by holder", "group", name, "didYouMean", hints[0])
		}
	}
}
