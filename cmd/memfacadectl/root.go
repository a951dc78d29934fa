package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/memfacade"
	"github.com/unkn0wn-root/memfacade/config"
	zaplog "github.com/unkn0wn-root/memfacade/log/zap"
	pr "github.com/unkn0wn-root/memfacade/provider"
	"github.com/unkn0wn-root/memfacade/provider/memcache"
)

type app struct {
	configPath string
	servers    []string

	cfg   *config.Config
	log   *zap.Logger
	cache memfacade.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "memfacadectl",
		Short:        "Get, set and purge keys on a memcached pool",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringSliceVarP(&a.servers, "servers", "s", nil, "servers, overrides config (host[:port],...)")

	root.AddCommand(a.getCmd(), a.setCmd(), a.purgeCmd(), a.purgeAllCmd(), a.statsCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if len(a.servers) > 0 {
		cfg.Servers = a.servers
	}
	a.cfg = cfg

	a.log, err = newLogger(cfg.Log)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(zaplog.ZapLogger{L: a.log}, nil)
	if err != nil {
		return err
	}
	a.cache, err = memfacade.New(opts)
	return err
}

func (a *app) teardown(ctx context.Context) error {
	if a.cache != nil {
		_ = a.cache.Close(ctx)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok, err := a.cache.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: not found", args[0])
			}
			_, err = cmd.OutOrStdout().Write(append(v, '\n'))
			return err
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.cache.Set(cmd.Context(), args[0], []byte(args[1]), ttl)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("value not stored")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "expiry; 0 uses default_ttl")
	return cmd
}

func (a *app) purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge KEY...",
		Short: "Delete keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range args {
				if err := a.cache.Purge(cmd.Context(), k); err != nil {
					return fmt.Errorf("purge %s: %w", k, err)
				}
			}
			return nil
		},
	}
}

func (a *app) purgeAllCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge-all",
		Short: "Flush every server in the pool (all keys of all clients)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("purge-all flushes every server in the pool; pass --yes to confirm")
			}
			return a.cache.PurgeAll(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the global flush")
	return cmd
}

// stats probes each server on a fresh client so the report covers every
// server, including ones the cache would route around.
func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report which configured servers answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eps, err := memfacade.ParseEndpoints(a.cfg.Servers)
			if err != nil {
				return err
			}
			p, err := a.probeProvider()
			if err != nil {
				return err
			}
			defer p.Close(cmd.Context())

			for _, ep := range eps {
				if err := p.AddServer(ep.Host, ep.Port); err != nil {
					return err
				}
			}
			st, err := p.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range st {
				if s.Alive {
					fmt.Fprintf(out, "%s\tup\n", s.Addr)
				} else {
					fmt.Fprintf(out, "%s\tdown\t%v\n", s.Addr, s.Err)
				}
			}
			if pr.Alive(st) == 0 {
				return &memfacade.ConnectError{Servers: a.cfg.Servers}
			}
			return nil
		},
	}
}

func (a *app) probeProvider() (pr.Provider, error) {
	opts, err := a.cfg.Options(nil, nil)
	if err != nil {
		return nil, err
	}
	if opts.Provider != nil {
		return opts.Provider()
	}
	return memcache.New(memcache.Config{Timeout: a.cfg.Timeout, MaxIdleConns: 1}), nil
}
