// Package config loads runtime settings from flags, SIMMETRIC_* environment
// variables and an optional simmetric.yaml, in that precedence order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultMatchTokens are the brand/model substrings that identify a
// wheel/pedal device by name. Unbranded devices still match when they
// expose 3 or more axes.
var DefaultMatchTokens = []string{
	"simagic", "fanatec", "logitech", "thrustmaster",
	"moza", "simucube", "heusinkveld", "wheel", "pedal",
}

type Config struct {
	Listen          string
	SampleInterval  time.Duration
	HistoryInterval time.Duration
	HistorySize     int
	MatchTimeout    time.Duration
	MatchTokens     []string
	ChartWidth      int
	ChartHeight     int
	OpenBrowser     bool
}

// Load parses args (normally os.Args[1:]) and merges them with environment
// variables and the optional config file.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("simmetric", pflag.ContinueOnError)
	flags.String("listen", ":8080", "HTTP listen address")
	flags.Duration("sample-interval", 16*time.Millisecond, "device sampling period")
	flags.Duration("history-interval", 16*time.Millisecond, "history recording period")
	flags.Int("history-size", 200, "rolling chart window capacity")
	flags.Duration("match-timeout", 2*time.Second, "how long a lost device may stay absent before disconnecting")
	flags.StringSlice("match-tokens", DefaultMatchTokens, "device name substrings treated as a match")
	flags.Int("chart-width", 1200, "chart surface width")
	flags.Int("chart-height", 300, "chart surface height")
	flags.Bool("open-browser", false, "open the dashboard in a browser on start")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("SIMMETRIC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("simmetric")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Listen:          v.GetString("listen"),
		SampleInterval:  v.GetDuration("sample-interval"),
		HistoryInterval: v.GetDuration("history-interval"),
		HistorySize:     v.GetInt("history-size"),
		MatchTimeout:    v.GetDuration("match-timeout"),
		MatchTokens:     v.GetStringSlice("match-tokens"),
		ChartWidth:      v.GetInt("chart-width"),
		ChartHeight:     v.GetInt("chart-height"),
		OpenBrowser:     v.GetBool("open-browser"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SampleInterval <= 0 || c.HistoryInterval <= 0 {
		return errors.New("sample-interval and history-interval must be positive")
	}
	if c.HistorySize < 2 {
		return errors.New("history-size must be at least 2")
	}
	if c.MatchTimeout <= 0 {
		return errors.New("match-timeout must be positive")
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return errors.New("chart dimensions must be positive")
	}
	return nil
}
