package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StatusTier maps a grading label to the lowest percentage that earns it.
// Tiers are checked top-down; the lower bound is inclusive.
type StatusTier struct {
	Status     string  `mapstructure:"status"`
	MinPercent float64 `mapstructure:"minPercent"`
}

// PerformanceConfig controls how achievement percentages are graded and how
// many representatives the dashboard leaderboard carries.
type PerformanceConfig struct {
	Tiers           []StatusTier `mapstructure:"tiers"`
	LeaderboardSize int          `mapstructure:"leaderboardSize"`
}

func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		Tiers: []StatusTier{
			{Status: "Excellent", MinPercent: 90},
			{Status: "Good", MinPercent: 75},
			{Status: "Average", MinPercent: 50},
		},
		LeaderboardSize: 10,
	}
}

type PerformanceConfigHolder struct {
	current atomic.Value // holds PerformanceConfig
}

func NewPerformanceConfigHolder() (*PerformanceConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("performance")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/fieldtrack/config") // Volume-mounted config
	v.AddConfigPath("/etc/fieldtrack")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("FIELDTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultPerformanceConfig()
		v.SetDefault("performance.tiers", defaults.Tiers)
		v.SetDefault("performance.leaderboardSize", defaults.LeaderboardSize)
	}

	var cfg PerformanceConfig
	if err := v.UnmarshalKey("performance", &cfg); err != nil {
		return nil, err
	}
	if err := validatePerformanceConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PerformanceConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PerformanceConfig
		if err := v.UnmarshalKey("performance", &updated); err != nil {
			log.Printf("[performance-config] reload failed: %v", err)
			return
		}
		if err := validatePerformanceConfig(updated); err != nil {
			log.Printf("[performance-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[performance-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PerformanceConfigHolder) Get() PerformanceConfig {
	return h.current.Load().(PerformanceConfig)
}

// NewStaticPerformanceConfigHolder wraps a fixed config, for tests.
func NewStaticPerformanceConfigHolder(cfg PerformanceConfig) *PerformanceConfigHolder {
	holder := &PerformanceConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validatePerformanceConfig(cfg PerformanceConfig) error {
	if cfg.LeaderboardSize < 1 {
		return errors.New("performance.leaderboardSize must be at least 1")
	}
	if len(cfg.Tiers) == 0 {
		return errors.New("performance.tiers must not be empty")
	}
	prev := 101.0
	for _, tier := range cfg.Tiers {
		if strings.TrimSpace(tier.Status) == "" {
			return errors.New("performance tier status must not be empty")
		}
		if tier.MinPercent < 0 || tier.MinPercent > 100 {
			return errors.New("performance tier minPercent must be within [0, 100]")
		}
		if tier.MinPercent >= prev {
			return errors.New("performance tiers must be ordered by descending minPercent")
		}
		prev = tier.MinPercent
	}
	return nil
}
