// Package config resolves the runtime configuration of a ringpath process
// from flags, RINGPATH_* environment variables and an optional ringpath.yaml.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/ringpath/logging"
	"github.com/katalvlaran/ringpath/matrix"
)

const (
	envPrefix      = "ringpath"
	configFileName = "ringpath"
)

// Flag names. Each one also reads RINGPATH_<NAME> with '-' replaced by '_'.
const (
	FlagConfig      = "config"
	FlagProcs       = "procs"
	FlagRank        = "rank"
	FlagPeers       = "peers"
	FlagListen      = "listen"
	FlagTransmitter = "transmitter"
	FlagSemiring    = "semiring"
	FlagCompress    = "compress"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagLogOutput   = "log-output"
	FlagMetrics     = "metrics"
)

const DefaultProcs = 4

var (
	ErrInvalidProcs       = errors.New("config: procs must be at least 1")
	ErrRankOutOfRange     = errors.New("config: rank out of range")
	ErrTransmitterInvalid = errors.New("config: transmitter out of range")
	ErrDuplicatePeer      = errors.New("config: duplicate peer address")
	ErrLogFormat          = errors.New("config: unknown log format")
)

type Config struct {
	Procs       int      `mapstructure:"procs"`
	Rank        int      `mapstructure:"rank"`
	Peers       []string `mapstructure:"peers"`
	Listen      string   `mapstructure:"listen"`
	Transmitter int      `mapstructure:"transmitter"`
	Semiring    string   `mapstructure:"semiring"`
	Compress    bool     `mapstructure:"compress"`
	LogLevel    string   `mapstructure:"log-level"`
	LogFormat   string   `mapstructure:"log-format"`
	LogOutput   []string `mapstructure:"log-output"`
	Metrics     bool     `mapstructure:"metrics"`
}

// Flags registers every configuration flag on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a YAML config file ($RINGPATH_CONFIG); ./ringpath.yaml is read when present")
	fs.Int(FlagProcs, DefaultProcs, "Ranks to run in this process when no peers are given ($RINGPATH_PROCS)")
	fs.Int(FlagRank, 0, "This process's rank in a multi-process ring ($RINGPATH_RANK)")
	fs.StringSlice(FlagPeers, nil, "Comma-separated peer addresses indexed by rank; enables multi-process mode ($RINGPATH_PEERS)")
	fs.String(FlagListen, "", "Address to serve on, defaults to this rank's peer address ($RINGPATH_LISTEN)")
	fs.Int(FlagTransmitter, 0, "Rank that reads the input and prints the result ($RINGPATH_TRANSMITTER)")
	fs.String(FlagSemiring, matrix.SemiringTropical, "Product semiring: tropical, min-plus or standard ($RINGPATH_SEMIRING)")
	fs.Bool(FlagCompress, false, "zstd-compress frames between processes ($RINGPATH_COMPRESS)")
	fs.String(FlagLogLevel, "info", "Log level ($RINGPATH_LOG_LEVEL)")
	fs.String(FlagLogFormat, logging.LogFormatConsole, "Log format: json or console ($RINGPATH_LOG_FORMAT)")
	fs.StringSlice(FlagLogOutput, nil, "Comma-separated log destinations: stderr, stdout or file paths; defaults to stderr ($RINGPATH_LOG_OUTPUT)")
	fs.Bool(FlagMetrics, false, "Print OpenTelemetry metrics to stdout on exit ($RINGPATH_METRICS)")
}

// Load merges flags, environment and config file into a validated Config.
// Precedence is flag, then environment, then file, then flag default.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	path, _ := cmd.Flags().GetString(FlagConfig)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToSliceHookFunc(","),
	)
}

// stringToSliceHookFunc splits a string into []string. Unlike the
// mapstructure version it only fires for []string targets.
func stringToSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		raw := data.(string)
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, sep), nil
	}
}

func (c *Config) normalize() {
	peers := c.Peers[:0]
	for _, p := range c.Peers {
		if p = strings.TrimSpace(p); p != "" {
			peers = append(peers, p)
		}
	}
	c.Peers = peers
	outputs := c.LogOutput[:0]
	for _, o := range c.LogOutput {
		if o = strings.TrimSpace(o); o != "" {
			outputs = append(outputs, o)
		}
	}
	c.LogOutput = outputs
	c.Semiring = strings.ToLower(strings.TrimSpace(c.Semiring))
}

// Distributed reports whether this process is one rank of a multi-process ring.
func (c *Config) Distributed() bool { return len(c.Peers) > 0 }

// WorldSize is the number of ranks in the ring.
func (c *Config) WorldSize() int {
	if c.Distributed() {
		return len(c.Peers)
	}
	return c.Procs
}

func (c *Config) Validate() error {
	if !c.Distributed() && c.Procs < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidProcs, c.Procs)
	}
	if c.Distributed() {
		if c.Rank < 0 || c.Rank >= len(c.Peers) {
			return fmt.Errorf("%w: %d of %d", ErrRankOutOfRange, c.Rank, len(c.Peers))
		}
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, p := range c.Peers {
			if !seen.Add(p) {
				return fmt.Errorf("%w: %s", ErrDuplicatePeer, p)
			}
		}
	}
	if c.Transmitter < 0 || c.Transmitter >= c.WorldSize() {
		return fmt.Errorf("%w: %d of %d", ErrTransmitterInvalid, c.Transmitter, c.WorldSize())
	}
	if _, err := matrix.SemiringByName(c.Semiring); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.LogFormat {
	case logging.LogFormatJSON, logging.LogFormatConsole:
	default:
		return fmt.Errorf("%w: %q", ErrLogFormat, c.LogFormat)
	}
	return nil
}
