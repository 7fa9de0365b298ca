// Package config loads run configuration layered from defaults, an
// optional config file, and environment variables, the same viper
// layering other tools in this stack use.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all tunables the CLI driver can set for one run.
type Config struct {
	Run   RunConfig   `mapstructure:"run"`
	Reach ReachConfig `mapstructure:"reach"`
	Trim  TrimConfig  `mapstructure:"trim"`
	Log   LogConfig   `mapstructure:"log"`
}

// RunConfig holds top-level run parameters.
type RunConfig struct {
	World        int    `mapstructure:"world"`
	PartitionKind string `mapstructure:"partition_kind"`
	BlockSize    int64  `mapstructure:"block_size"`
}

// ReachConfig exposes the forward/backward reachability switch
// thresholds (4.G) as tunables rather than hardcoded constants.
type ReachConfig struct {
	Alpha       int64 `mapstructure:"alpha"`
	LevelSwitch int   `mapstructure:"level_switch"`
	SizeSwitch  int   `mapstructure:"size_switch"`
}

// TrimConfig exposes the iterative trim sweep cap (4.E).
type TrimConfig struct {
	MaxSweeps int `mapstructure:"max_sweeps"`
}

// LogConfig controls the structured run logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load reads configuration from the given path (if non-empty) or the
// standard search locations, falling back to defaults, then lets
// environment variables override anything set so far.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("kaspan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/kaspan")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file anywhere searched; defaults stand.
		} else if os.IsNotExist(err) {
			// an explicit path was given but doesn't exist; defaults stand.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("KASPAN")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the engine could not run with.
func (c *Config) Validate() error {
	if c.Run.World < 1 {
		return fmt.Errorf("run.world must be >= 1, got %d", c.Run.World)
	}
	if c.Reach.Alpha <= 0 {
		return fmt.Errorf("reach.alpha must be > 0, got %d", c.Reach.Alpha)
	}
	if c.Trim.MaxSweeps < 1 {
		return fmt.Errorf("trim.max_sweeps must be >= 1, got %d", c.Trim.MaxSweeps)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("run.world", 1)
	v.SetDefault("run.partition_kind", "trivial-slice")
	v.SetDefault("run.block_size", 64)

	v.SetDefault("reach.alpha", 14)
	v.SetDefault("reach.level_switch", 50)
	v.SetDefault("reach.size_switch", 10000)

	v.SetDefault("trim.max_sweeps", 3)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
