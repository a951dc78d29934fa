// Package config loads memfacade settings from a file and the environment.
//
// Keys (env: MEMFACADE_<KEY>, dots become underscores):
//
//	servers                 list or comma-separated "host[:port]"
//	default_ttl             seconds or a duration ("90s", "1h"); negative disables
//	fail_on_connect_error   default true
//	namespace               optional key prefix
//	provider                memcache (default) | redis | ristretto | bigcache
//	timeout, max_idle_conns memcache client tuning
//	redis.password, redis.db
//	local.max_cost_mb, local.life_window
//	log.level, log.format   debug|info|warn|error, json|console
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/memfacade"
	pr "github.com/unkn0wn-root/memfacade/provider"
	"github.com/unkn0wn-root/memfacade/provider/bigcache"
	"github.com/unkn0wn-root/memfacade/provider/redis"
	"github.com/unkn0wn-root/memfacade/provider/ristretto"
)

const EnvPrefix = "MEMFACADE"

const (
	ProviderMemcache  = "memcache"
	ProviderRedis     = "redis"
	ProviderRistretto = "ristretto"
	ProviderBigcache  = "bigcache"
)

type Config struct {
	Servers            []string      `mapstructure:"servers"`
	DefaultTTL         time.Duration `mapstructure:"default_ttl"`
	FailOnConnectError bool          `mapstructure:"fail_on_connect_error"`
	Namespace          string        `mapstructure:"namespace"`
	Provider           string        `mapstructure:"provider"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	Redis              RedisConfig   `mapstructure:"redis"`
	Local              LocalConfig   `mapstructure:"local"`
	Log                LogConfig     `mapstructure:"log"`
}

type RedisConfig struct {
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LocalConfig tunes the in-process providers.
type LocalConfig struct {
	MaxCostMB  int           `mapstructure:"max_cost_mb"`
	LifeWindow time.Duration `mapstructure:"life_window"` // bigcache only
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("servers", []string{})
	v.SetDefault("default_ttl", memfacade.DefaultTTL)
	v.SetDefault("fail_on_connect_error", true)
	v.SetDefault("namespace", "")
	v.SetDefault("provider", ProviderMemcache)
	v.SetDefault("timeout", 100*time.Millisecond)
	v.SetDefault("max_idle_conns", 2)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("local.max_cost_mb", 64)
	v.SetDefault("local.life_window", memfacade.DefaultTTL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads path (any format viper knows; empty skips the file) and then
// applies MEMFACADE_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDuration,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Servers = compact(cfg.Servers)
	return &cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDuration reads bare numbers as seconds, the unit memcached uses
// for expiry. Strings with a unit are left to StringToTimeDurationHookFunc.
func secondsToDuration(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(reflect.ValueOf(data).Uint()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(reflect.ValueOf(data).Float() * float64(time.Second)), nil
	case reflect.String:
		if n, err := strconv.ParseInt(strings.TrimSpace(data.(string)), 10, 64); err == nil {
			return time.Duration(n) * time.Second, nil
		}
	}
	return data, nil
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Options maps the config onto memfacade.Options. logger and hooks may be nil.
func (c *Config) Options(logger memfacade.Logger, hooks memfacade.Hooks) (memfacade.Options, error) {
	opts := memfacade.Options{
		Servers:      c.Servers,
		DefaultTTL:   c.DefaultTTL,
		Lenient:      !c.FailOnConnectError,
		Namespace:    c.Namespace,
		Logger:       logger,
		Hooks:        hooks,
		Timeout:      c.Timeout,
		MaxIdleConns: c.MaxIdleConns,
	}
	if c.DefaultTTL < 0 {
		opts.DefaultTTL = memfacade.NoDefaultTTL
	}

	maxCost := int64(c.Local.MaxCostMB) << 20
	switch strings.ToLower(c.Provider) {
	case "", ProviderMemcache:
		// memfacade's default provider
	case ProviderRedis:
		rc := redis.Config{Password: c.Redis.Password, DB: c.Redis.DB, DialTimeout: c.Timeout}
		opts.Provider = func() (pr.Provider, error) { return redis.New(rc), nil }
	case ProviderRistretto:
		rc := ristretto.Config{NumCounters: 1e6, MaxCost: maxCost, BufferItems: 64}
		opts.Provider = func() (pr.Provider, error) { return ristretto.New(rc) }
	case ProviderBigcache:
		bc := bigcache.Config{LifeWindow: c.Local.LifeWindow, HardMaxCacheSizeMB: c.Local.MaxCostMB}
		opts.Provider = func() (pr.Provider, error) { return bigcache.New(bc) }
	default:
		return memfacade.Options{}, &memfacade.ConfigError{
			Field: "provider",
			Value: c.Provider,
			Err:   errors.New("want memcache, redis, ristretto or bigcache"),
		}
	}
	return opts, nil
}

// New loads path and builds the cache in one step.
func New(path string, logger memfacade.Logger, hooks memfacade.Hooks) (memfacade.Cache, *Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.Options(logger, hooks)
	if err != nil {
		return nil, nil, err
	}
	c, err := memfacade.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}
