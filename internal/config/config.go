// Package config parses command-line flags and environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Config holds the server configuration.
type Config struct {
	Addr        string
	DBPath      string
	LogPath     string
	Seed        bool
	CORSOrigins []string
	Rate        float64
	Burst       int
}

const usage = `Usage: garderoba [flags]

Flags:
  -a, -addr <host:port>      listen address (default: :8080)
  -d, -db <path>             SQLite journal path (default: none, in-memory only)
  -l, -log <path>            log file path (default: no file, stdout/stderr only)
  -s, -seed                  load the sample wardrobe when it is empty
      -cors-origin <list>    comma-separated allowed origins (default: *)
      -rate <n>              API requests per second per client, 0 disables (default: 0)
      -burst <n>             API burst size per client (default: twice the rate)
  -h, -help                  show this help and exit

Every flag can also be set with a GARDEROBA_ environment variable, e.g.
GARDEROBA_ADDR or GARDEROBA_CORS_ORIGIN. Flags take precedence.
`

// Parse reads the configuration from args, falling back to environment
// variables looked up with getenv. It returns flag.ErrHelp when help was
// requested; the usage text is written to out.
func Parse(args []string, getenv func(string) string, out io.Writer) (*Config, error) {
	env := func(key, def string) string {
		if v := getenv("GARDEROBA_" + key); v != "" {
			return v
		}
		return def
	}

	envSeed, err := parseBoolEnv(env("SEED", ""))
	if err != nil {
		return nil, fmt.Errorf("GARDEROBA_SEED: %w", err)
	}
	envRate, err := parseFloatEnv(env("RATE", ""))
	if err != nil {
		return nil, fmt.Errorf("GARDEROBA_RATE: %w", err)
	}
	envBurst, err := parseIntEnv(env("BURST", ""))
	if err != nil {
		return nil, fmt.Errorf("GARDEROBA_BURST: %w", err)
	}

	fs := flag.NewFlagSet("garderoba", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", env("ADDR", ":8080"), "")
	fs.StringVar(&cfg.Addr, "a", env("ADDR", ":8080"), "")
	fs.StringVar(&cfg.DBPath, "db", env("DB", ""), "")
	fs.StringVar(&cfg.DBPath, "d", env("DB", ""), "")
	fs.StringVar(&cfg.LogPath, "log", env("LOG", ""), "")
	fs.StringVar(&cfg.LogPath, "l", env("LOG", ""), "")
	fs.BoolVar(&cfg.Seed, "seed", envSeed, "")
	fs.BoolVar(&cfg.Seed, "s", envSeed, "")
	origins := fs.String("cors-origin", env("CORS_ORIGIN", ""), "")
	fs.Float64Var(&cfg.Rate, "rate", envRate, "")
	fs.IntVar(&cfg.Burst, "burst", envBurst, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg.CORSOrigins = splitList(*origins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is required")
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %v", c.Rate)
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst must not be negative, got %d", c.Burst)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolEnv(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseFloatEnv(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntEnv(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
