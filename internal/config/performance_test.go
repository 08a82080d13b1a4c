package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPerformanceConfig(t *testing.T) {
	cfg := DefaultPerformanceConfig()
	require.NoError(t, validatePerformanceConfig(cfg))
	assert.Equal(t, 10, cfg.LeaderboardSize)
	require.Len(t, cfg.Tiers, 3)
	assert.Equal(t, "Excellent", cfg.Tiers[0].Status)
	assert.Equal(t, 90.0, cfg.Tiers[0].MinPercent)
	assert.Equal(t, 75.0, cfg.Tiers[1].MinPercent)
	assert.Equal(t, 50.0, cfg.Tiers[2].MinPercent)
}

func TestValidatePerformanceConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  PerformanceConfig
		ok   bool
	}{
		{
			name: "defaults are valid",
			cfg:  DefaultPerformanceConfig(),
			ok:   true,
		},
		{
			name: "leaderboard size below one",
			cfg: PerformanceConfig{
				Tiers:           DefaultPerformanceConfig().Tiers,
				LeaderboardSize: 0,
			},
		},
		{
			name: "no tiers",
			cfg:  PerformanceConfig{LeaderboardSize: 10},
		},
		{
			name: "tiers out of order",
			cfg: PerformanceConfig{
				Tiers: []StatusTier{
					{Status: "Good", MinPercent: 75},
					{Status: "Excellent", MinPercent: 90},
				},
				LeaderboardSize: 10,
			},
		},
		{
			name: "tier above 100",
			cfg: PerformanceConfig{
				Tiers:           []StatusTier{{Status: "Impossible", MinPercent: 110}},
				LeaderboardSize: 10,
			},
		},
		{
			name: "blank status",
			cfg: PerformanceConfig{
				Tiers:           []StatusTier{{Status: " ", MinPercent: 50}},
				LeaderboardSize: 10,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePerformanceConfig(tc.cfg)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStaticHolder(t *testing.T) {
	holder := NewStaticPerformanceConfigHolder(DefaultPerformanceConfig())
	assert.Equal(t, DefaultPerformanceConfig(), holder.Get())
}
