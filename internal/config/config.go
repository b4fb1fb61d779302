package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Spin     SpinConfig
	Donation DonationConfig
	Wallet   WalletConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// SpinConfig holds the animation timing knobs, all in milliseconds.
type SpinConfig struct {
	DurationMS    int `mapstructure:"duration_ms"`
	WheelSettleMS int `mapstructure:"wheel_settle_ms"`
	WheelTickMS   int `mapstructure:"wheel_tick_ms"`
	CharityTickMS int `mapstructure:"charity_tick_ms"`
}

// Duration is the full spin length; the charity picker settles here.
func (s SpinConfig) Duration() time.Duration { return time.Duration(s.DurationMS) * time.Millisecond }

// WheelSettle is when the wheel stops, slightly before Duration.
func (s SpinConfig) WheelSettle() time.Duration {
	return time.Duration(s.WheelSettleMS) * time.Millisecond
}

// WheelTick is the wheel animation frame interval.
func (s SpinConfig) WheelTick() time.Duration { return time.Duration(s.WheelTickMS) * time.Millisecond }

// CharityTick is the charity cycling interval.
func (s SpinConfig) CharityTick() time.Duration {
	return time.Duration(s.CharityTickMS) * time.Millisecond
}

// DonationConfig holds the simulated submission settings.
type DonationConfig struct {
	DelayMS int `mapstructure:"delay_ms"`
}

// Delay is the simulated network latency of a donation submission.
func (d DonationConfig) Delay() time.Duration { return time.Duration(d.DelayMS) * time.Millisecond }

// WalletConfig holds the capability-check settings.
type WalletConfig struct {
	ProviderEnv string `mapstructure:"provider_env"`
	Strict      bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig holds the event log sink settings.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix GIVEWHEEL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "givewheel", "givewheel.db"))
	v.SetDefault("spin.duration_ms", 4000)
	v.SetDefault("spin.wheel_settle_ms", 3900)
	v.SetDefault("spin.wheel_tick_ms", 125)
	v.SetDefault("spin.charity_tick_ms", 100)
	v.SetDefault("donation.delay_ms", 1500)
	v.SetDefault("wallet.provider_env", "GIVEWHEEL_ETH_PROVIDER")
	v.SetDefault("wallet.strict", false)
	v.SetDefault("ui.currency_symbol", "Ξ")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "givewheel", "events.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GIVEWHEEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "givewheel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GIVEWHEEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("GIVEWHEEL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "givewheel", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("spin.duration_ms", cfg.Spin.DurationMS)
	v.Set("spin.wheel_settle_ms", cfg.Spin.WheelSettleMS)
	v.Set("spin.wheel_tick_ms", cfg.Spin.WheelTickMS)
	v.Set("spin.charity_tick_ms", cfg.Spin.CharityTickMS)
	v.Set("donation.delay_ms", cfg.Donation.DelayMS)
	v.Set("wallet.provider_env", cfg.Wallet.ProviderEnv)
	v.Set("wallet.strict", cfg.Wallet.Strict)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
