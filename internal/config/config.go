// Package config loads the service configuration from defaults, an optional
// YAML or JSON file and AUTOMATA_* environment variables, in that order of
// precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given and it exists in the working directory.
const DefaultFile = "automata.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full service configuration.
type Config struct {
	LogLevel     string      `mapstructure:"log_level"`
	LogFormat    string      `mapstructure:"log_format"`
	MaxInputSize int         `mapstructure:"max_input_size"`
	Store        StoreConfig `mapstructure:"store"`
	HTTP         HTTPConfig  `mapstructure:"http"`
}

// StoreConfig selects and configures the automaton store.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the Redis store and locker.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() map[string]any {
	return map[string]any{
		"log_level":      "info",
		"log_format":     "text",
		"max_input_size": 4096,
		"store": map[string]any{
			"backend": BackendFile,
			"dir":     ".automata",
			"redis": map[string]any{
				"addr":     "localhost:6379",
				"password": "",
				"db":       0,
				"prefix":   "automata:",
				"ttl":      "0s",
			},
		},
		"http": map[string]any{
			"addr":             ":8080",
			"cors_origin":      "*",
			"read_timeout":     "10s",
			"shutdown_timeout": "5s",
			"lock_ttl":         "10s",
		},
	}
}

// envKeys maps environment variables to dotted config keys.
var envKeys = map[string]string{
	"AUTOMATA_LOG_LEVEL":        "log_level",
	"AUTOMATA_LOG_FORMAT":       "log_format",
	"AUTOMATA_MAX_INPUT_SIZE":   "max_input_size",
	"AUTOMATA_STORE_BACKEND":    "store.backend",
	"AUTOMATA_STORE_DIR":        "store.dir",
	"AUTOMATA_REDIS_ADDR":       "store.redis.addr",
	"AUTOMATA_REDIS_PASSWORD":   "store.redis.password",
	"AUTOMATA_REDIS_DB":         "store.redis.db",
	"AUTOMATA_REDIS_PREFIX":     "store.redis.prefix",
	"AUTOMATA_REDIS_TTL":        "store.redis.ttl",
	"AUTOMATA_HTTP_ADDR":        "http.addr",
	"AUTOMATA_HTTP_CORS_ORIGIN": "http.cors_origin",
}

// Load builds the configuration. An empty path reads DefaultFile if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	raw := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	fileValues, err := readFile(path)
	switch {
	case err == nil:
		merge(raw, fileValues)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	applyEnv(raw, os.LookupEnv)

	cfg, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("store.backend %q must be one of memory, file, redis", c.Store.Backend))
	}
	if c.Store.Backend == BackendFile && c.Store.Dir == "" {
		errs = append(errs, errors.New("store.dir is required for the file backend"))
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var out map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for env, key := range envKeys {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		parts := strings.Split(key, ".")
		m := raw
		for _, p := range parts[:len(parts)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[p] = next
			}
			m = next
		}
		m[parts[len(parts)-1]] = val
	}
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}
